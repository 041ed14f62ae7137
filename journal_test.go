package alpha

import (
	"testing"

	"github.com/alphatrack/alpha/research"
)

func TestJournal_AddAndToggle(t *testing.T) {
	j := NewJournal(nil, nil)
	note, err := j.Add("sold too early again", NoteText)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	task, err := j.Add("review sizing rules", NoteTask)
	if err != nil {
		t.Fatal(err)
	}

	if err := j.ToggleDone(task.ID); err != nil {
		t.Fatal(err)
	}
	if !task.Completed {
		t.Error("task not marked done")
	}
	if err := j.ToggleDone(task.ID); err != nil {
		t.Fatal(err)
	}
	if task.Completed {
		t.Error("second toggle did not undo")
	}

	// Only tasks can be toggled.
	if err := j.ToggleDone(note.ID); err == nil {
		t.Error("toggling a text note succeeded")
	}
	if _, err := j.Add("", NoteText); err == nil {
		t.Error("empty note accepted")
	}
}

func TestJournal_AttachAnalysis(t *testing.T) {
	j := NewJournal(nil, nil)
	note, _ := j.Add("chased a limit-up open", NoteText)

	a := &research.ReflectionAnalysis{RootCause: "FOMO", Prevention: "wait for the pullback"}
	if err := j.Attach(note.ID, a); err != nil {
		t.Fatal(err)
	}
	if note.Analysis == nil || note.Analysis.RootCause != "FOMO" {
		t.Errorf("analysis not attached: %+v", note.Analysis)
	}
	if err := j.Attach("nope", a); err == nil {
		t.Error("attaching to an unknown note succeeded")
	}
}

func TestJournal_SummaryAppendsEntry(t *testing.T) {
	j := NewJournal(nil, nil)
	j.Add("note one", NoteText)
	j.Add("note two", NoteText)

	rec := j.SetSummary(research.ReflectionSummary{
		Content:   "you keep selling winners too early",
		KeyPoints: []string{"hold through the first pullback"},
	})
	if j.Summary() != rec {
		t.Error("summary not stored")
	}

	// The summary also lands in the timeline as an ai_summary entry.
	if got := len(j.Raw()); got != 3 {
		t.Fatalf("entries = %d, want 3", got)
	}
	last := j.Raw()[2]
	if last.Kind != NoteSummary || last.Content != rec.Content {
		t.Errorf("appended entry = %+v", last)
	}

	// Earlier summaries are excluded from the next reflection batch.
	eligible := j.Reflectable()
	if len(eligible) != 2 {
		t.Fatalf("reflectable = %d, want 2", len(eligible))
	}
	for _, n := range eligible {
		if n.Kind == NoteSummary {
			t.Errorf("summary entry leaked into the batch: %+v", n)
		}
	}
}

func TestJournal_Edit(t *testing.T) {
	j := NewJournal(nil, nil)
	note, _ := j.Add("sold to early", NoteText)

	if err := j.Edit(note.ID, "sold too early"); err != nil {
		t.Fatal(err)
	}
	if note.Content != "sold too early" {
		t.Errorf("content = %q", note.Content)
	}
	if err := j.Edit(note.ID, ""); err == nil {
		t.Error("empty content accepted")
	}
	if err := j.Edit("nope", "x"); err == nil {
		t.Error("editing an unknown note succeeded")
	}

	j.SetSummary(research.ReflectionSummary{Content: "summary"})
	sum := j.Raw()[len(j.Raw())-1]
	if err := j.Edit(sum.ID, "rewrite"); err == nil {
		t.Error("editing a generated summary succeeded")
	}
}

func TestJournal_Delete(t *testing.T) {
	j := NewJournal(nil, nil)
	note, _ := j.Add("x", NoteText)
	if !j.Delete(note.ID) {
		t.Fatal("Delete() failed")
	}
	if j.Delete(note.ID) {
		t.Fatal("deleting twice succeeded")
	}
}
