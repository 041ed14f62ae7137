package alpha

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alphatrack/alpha/research"
)

// NoteKind distinguishes the entry types of the trading journal.
type NoteKind string

const (
	NoteText    NoteKind = "text"
	NoteTask    NoteKind = "task"
	NoteSummary NoteKind = "ai_summary" // appended by the reflection summarizer
)

// ParseNoteKind parses a note kind.
func ParseNoteKind(s string) (NoteKind, error) {
	switch NoteKind(s) {
	case NoteText, NoteTask, NoteSummary:
		return NoteKind(s), nil
	default:
		return "", fmt.Errorf("unknown note kind %q (want text, task or ai_summary)", s)
	}
}

// Note is one journal entry. Tasks carry a completion flag; any note can
// carry a coaching analysis once one has been requested.
type Note struct {
	ID        string                       `json:"id"`
	Content   string                       `json:"content"`
	Kind      NoteKind                     `json:"type"`
	Completed bool                         `json:"isCompleted,omitempty"`
	CreatedAt time.Time                    `json:"createdAt"`
	Analysis  *research.ReflectionAnalysis `json:"aiAnalysis,omitempty"`
}

// SummaryRecord is the stored aggregate reflection with its generation time.
type SummaryRecord struct {
	research.ReflectionSummary
	GeneratedAt time.Time `json:"generatedAt"`
}

// Journal is the trading diary: notes, tasks and the latest aggregate
// reflection.
type Journal struct {
	notes   []*Note
	summary *SummaryRecord
}

// NewJournal builds a journal from persisted state.
func NewJournal(notes []*Note, summary *SummaryRecord) *Journal {
	return &Journal{notes: notes, summary: summary}
}

// Notes returns the entries, newest first.
func (j *Journal) Notes() []*Note {
	sorted := make([]*Note, len(j.notes))
	copy(sorted, j.notes)
	sort.SliceStable(sorted, func(i, k int) bool {
		return sorted[i].CreatedAt.After(sorted[k].CreatedAt)
	})
	return sorted
}

// Raw returns the notes in insertion order, for persistence.
func (j *Journal) Raw() []*Note { return j.notes }

// Summary returns the latest aggregate reflection, or nil.
func (j *Journal) Summary() *SummaryRecord { return j.summary }

// Find returns the note with the given id, or nil.
func (j *Journal) Find(id string) *Note {
	for _, n := range j.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Add appends a new entry.
func (j *Journal) Add(content string, kind NoteKind) (*Note, error) {
	if content == "" {
		return nil, fmt.Errorf("note content is empty")
	}
	n := &Note{
		ID:        uuid.NewString(),
		Content:   content,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	j.notes = append(j.notes, n)
	return n, nil
}

// Edit replaces the content of a note. Machine summaries cannot be edited.
func (j *Journal) Edit(id, content string) error {
	if content == "" {
		return fmt.Errorf("note content is empty")
	}
	n := j.Find(id)
	if n == nil {
		return fmt.Errorf("unknown note %q", id)
	}
	if n.Kind == NoteSummary {
		return fmt.Errorf("note %q is a generated summary and cannot be edited", id)
	}
	n.Content = content
	return nil
}

// ToggleDone flips a task's completion flag.
func (j *Journal) ToggleDone(id string) error {
	n := j.Find(id)
	if n == nil {
		return fmt.Errorf("unknown note %q", id)
	}
	if n.Kind != NoteTask {
		return fmt.Errorf("note %q is not a task", id)
	}
	n.Completed = !n.Completed
	return nil
}

// Delete removes the entry with the given id, reporting whether it existed.
func (j *Journal) Delete(id string) bool {
	for i, n := range j.notes {
		if n.ID == id {
			j.notes = append(j.notes[:i], j.notes[i+1:]...)
			return true
		}
	}
	return false
}

// Attach stores a coaching analysis on the note.
func (j *Journal) Attach(id string, a *research.ReflectionAnalysis) error {
	n := j.Find(id)
	if n == nil {
		return fmt.Errorf("unknown note %q", id)
	}
	n.Analysis = a
	return nil
}

// Reflectable returns the entries eligible for the aggregate summary: plain
// notes and tasks, skipping earlier machine summaries.
func (j *Journal) Reflectable() []*Note {
	eligible := make([]*Note, 0, len(j.notes))
	for _, n := range j.notes {
		if n.Kind != NoteSummary {
			eligible = append(eligible, n)
		}
	}
	return eligible
}

// SetSummary stores the aggregate reflection and appends it to the journal
// as an ai_summary entry so it survives in the timeline.
func (j *Journal) SetSummary(s research.ReflectionSummary) *SummaryRecord {
	rec := &SummaryRecord{ReflectionSummary: s, GeneratedAt: time.Now()}
	j.summary = rec
	j.notes = append(j.notes, &Note{
		ID:        uuid.NewString(),
		Content:   s.Content,
		Kind:      NoteSummary,
		CreatedAt: rec.GeneratedAt,
	})
	return rec
}
