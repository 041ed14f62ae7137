package alpha

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alphatrack/alpha/research"
)

// Topic is one thematic keyword under observation, together with its latest
// research report.
type Topic struct {
	ID            string     `json:"id"`
	Keyword       string     `json:"keyword"`
	Summary       string     `json:"summary"`
	Score         float64    `json:"sentimentScore"` // 0-10
	Catalyst      string     `json:"catalyst"`
	RelatedStocks []string   `json:"relatedStocks"`
	State         FetchState `json:"fetchState"`
	LastUpdated   time.Time  `json:"lastUpdated"`
}

// apply copies a research report into the topic.
func (t *Topic) apply(a *research.TopicAnalysis) {
	t.Summary = a.Summary
	t.Score = a.SentimentScore
	t.Catalyst = a.Catalyst
	t.RelatedStocks = a.RelatedStocks
	t.State = FetchResolved
	t.LastUpdated = time.Now()
}

// Favorite is a pinned topic snapshot. Unlike the live topic it is frozen at
// save time, so a later refresh does not rewrite what the user bookmarked.
type Favorite struct {
	ID       string    `json:"id"`
	Keyword  string    `json:"topicKeyword"`
	Summary  string    `json:"summary"`
	Catalyst string    `json:"catalyst"`
	SavedAt  time.Time `json:"savedAt"`
}

// Topics is the set of tracked topics plus the favorites shelf.
type Topics struct {
	topics    []*Topic
	favorites []Favorite
}

// NewTopics builds the collection from persisted state.
func NewTopics(topics []*Topic, favorites []Favorite) *Topics {
	for _, t := range topics {
		if t.State == FetchPending {
			t.State = FetchFailed
		}
	}
	return &Topics{topics: topics, favorites: favorites}
}

// All returns the tracked topics, most recently updated first.
func (ts *Topics) All() []*Topic {
	sorted := make([]*Topic, len(ts.topics))
	copy(sorted, ts.topics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdated.After(sorted[j].LastUpdated)
	})
	return sorted
}

// Raw returns the topics in insertion order, for persistence.
func (ts *Topics) Raw() []*Topic { return ts.topics }

// Favorites returns the pinned snapshots, most recently saved first.
func (ts *Topics) Favorites() []Favorite {
	sorted := make([]Favorite, len(ts.favorites))
	copy(sorted, ts.favorites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SavedAt.After(sorted[j].SavedAt)
	})
	return sorted
}

// Find returns the tracked topic for the keyword, or nil. Matching ignores
// case.
func (ts *Topics) Find(keyword string) *Topic {
	for _, t := range ts.topics {
		if strings.EqualFold(t.Keyword, keyword) {
			return t
		}
	}
	return nil
}

// Track inserts a pending placeholder for the keyword. If the research then
// fails the caller rolls back with Delete.
func (ts *Topics) Track(keyword string) (*Topic, error) {
	if keyword = strings.TrimSpace(keyword); keyword == "" {
		return nil, fmt.Errorf("topic keyword is empty")
	}
	if ts.Find(keyword) != nil {
		return nil, fmt.Errorf("topic %q is already tracked", keyword)
	}
	t := &Topic{
		ID:          uuid.NewString(),
		Keyword:     keyword,
		State:       FetchPending,
		LastUpdated: time.Now(),
	}
	ts.topics = append(ts.topics, t)
	return t, nil
}

// Resolve applies a research report to the tracked keyword.
func (ts *Topics) Resolve(keyword string, a *research.TopicAnalysis) {
	if t := ts.Find(keyword); t != nil {
		t.apply(a)
	}
}

// MarkFailed records a failed refresh, keeping the previous report.
func (ts *Topics) MarkFailed(keyword string) {
	if t := ts.Find(keyword); t != nil {
		t.State = FetchFailed
	}
}

// Delete removes the tracked keyword, reporting whether it existed.
func (ts *Topics) Delete(keyword string) bool {
	for i, t := range ts.topics {
		if strings.EqualFold(t.Keyword, keyword) {
			ts.topics = append(ts.topics[:i], ts.topics[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleFavorite pins the topic's current report, or unpins it when the same
// keyword and summary are already saved. It reports whether the topic is
// pinned after the call.
func (ts *Topics) ToggleFavorite(t *Topic) bool {
	for i, f := range ts.favorites {
		if f.Keyword == t.Keyword && f.Summary == t.Summary {
			ts.favorites = append(ts.favorites[:i], ts.favorites[i+1:]...)
			return false
		}
	}
	ts.favorites = append(ts.favorites, Favorite{
		ID:       uuid.NewString(),
		Keyword:  t.Keyword,
		Summary:  t.Summary,
		Catalyst: t.Catalyst,
		SavedAt:  time.Now(),
	})
	return true
}

// RemoveFavorite unpins the favorite with the given id.
func (ts *Topics) RemoveFavorite(id string) bool {
	for i, f := range ts.favorites {
		if f.ID == id {
			ts.favorites = append(ts.favorites[:i], ts.favorites[i+1:]...)
			return true
		}
	}
	return false
}

// RawFavorites returns the favorites in insertion order, for persistence.
func (ts *Topics) RawFavorites() []Favorite { return ts.favorites }
