package alpha

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alphatrack/alpha/research"
)

// Category ranks how much attention a watched stock deserves.
type Category string

const (
	CategoryHolding Category = "holding" // currently in the portfolio
	CategoryStrong  Category = "strong"
	CategoryMedium  Category = "medium"
	CategoryNormal  Category = "normal"
)

// ParseCategory parses a watch category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryHolding, CategoryStrong, CategoryMedium, CategoryNormal:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q (want holding, strong, medium or normal)", s)
	}
}

// rank orders categories for display, most important first.
func (c Category) rank() int {
	switch c {
	case CategoryHolding:
		return 0
	case CategoryStrong:
		return 1
	case CategoryMedium:
		return 2
	default:
		return 3
	}
}

// FetchState tracks the research lifecycle of a watchlist entry.
type FetchState string

const (
	FetchPending  FetchState = "pending"  // placeholder, research in flight
	FetchResolved FetchState = "resolved" // research applied
	FetchFailed   FetchState = "failed"   // last research attempt failed, prior data kept
)

// Entry is one watched stock. Price and ChangePercent are the last resolved
// quote; Analysis holds the full research report when one has arrived.
type Entry struct {
	Name          string                  `json:"name"`
	Code          string                  `json:"code,omitempty"`
	Market        string                  `json:"market,omitempty"`
	Price         float64                 `json:"price"`
	ChangePercent float64                 `json:"changePercent"`
	Category      Category                `json:"category"`
	State         FetchState              `json:"fetchState"`
	LastUpdated   time.Time               `json:"lastUpdated"`
	Analysis      *research.StockAnalysis `json:"analysis,omitempty"`
}

// Sector returns the resolved industry name, or "" when unknown.
func (e *Entry) Sector() string {
	if e.Analysis == nil {
		return ""
	}
	return e.Analysis.Industry.Name
}

// Watchlist is the collection of stocks under research observation.
type Watchlist struct {
	entries []*Entry
}

// NewWatchlist builds a watchlist from persisted entries. Entries left
// pending by an interrupted run are downgraded to failed so they can be
// refreshed or removed.
func NewWatchlist(entries []*Entry) *Watchlist {
	for _, e := range entries {
		if e.State == FetchPending {
			e.State = FetchFailed
		}
	}
	return &Watchlist{entries: entries}
}

// Entries returns the watched stocks sorted for display: by category rank,
// then most recently updated first.
func (w *Watchlist) Entries() []*Entry {
	sorted := make([]*Entry, len(w.entries))
	copy(sorted, w.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Category.rank() != b.Category.rank() {
			return a.Category.rank() < b.Category.rank()
		}
		return a.LastUpdated.After(b.LastUpdated)
	})
	return sorted
}

// Raw returns the entries in insertion order, for persistence.
func (w *Watchlist) Raw() []*Entry { return w.entries }

// Find returns the entry with the given name, or nil. Matching ignores case.
func (w *Watchlist) Find(name string) *Entry {
	for _, e := range w.entries {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

// nameMatch is the best-effort identity test between a position name and a
// watchlist name: equal, or one containing the other, ignoring case.
// Display names are not canonical, so "Foo" must still hit "Foo Inc".
func nameMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// FindMatch returns the entry best matching the name: an exact hit first,
// then the first substring match. Commands that address an entry the user
// typed keep using Find; FindMatch is for lining positions up with entries.
func (w *Watchlist) FindMatch(name string) *Entry {
	if e := w.Find(name); e != nil {
		return e
	}
	for _, e := range w.entries {
		if nameMatch(e.Name, name) {
			return e
		}
	}
	return nil
}

// Add inserts a pending placeholder for the stock, before any research has
// run, so the list reflects the user's intent immediately. If the research
// then fails, the caller rolls back with Remove.
func (w *Watchlist) Add(name string) (*Entry, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, fmt.Errorf("stock name is empty")
	}
	if w.Find(name) != nil {
		return nil, fmt.Errorf("%q is already on the watchlist", name)
	}
	e := &Entry{
		Name:        name,
		Category:    CategoryNormal,
		State:       FetchPending,
		LastUpdated: time.Now(),
	}
	w.entries = append(w.entries, e)
	return e, nil
}

// Remove deletes the named entry, reporting whether it existed.
func (w *Watchlist) Remove(name string) bool {
	for i, e := range w.entries {
		if strings.EqualFold(e.Name, name) {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Resolve applies a research report to the named entry and marks it
// resolved. Unknown names are ignored, so a concurrent removal wins.
func (w *Watchlist) Resolve(name string, a *research.StockAnalysis) {
	e := w.Find(name)
	if e == nil {
		return
	}
	e.Analysis = a
	e.Market = a.Market
	if a.Price != 0 {
		e.Price = a.Price
	}
	e.ChangePercent = a.ChangePercent
	e.State = FetchResolved
	e.LastUpdated = time.Now()
}

// MarkFailed records a failed research attempt. Earlier resolved data stays
// in place so a transient outage never erases the list.
func (w *Watchlist) MarkFailed(name string) {
	if e := w.Find(name); e != nil {
		e.State = FetchFailed
	}
}

// SetCategory reclassifies the named entry.
func (w *Watchlist) SetCategory(name string, c Category) error {
	e := w.Find(name)
	if e == nil {
		return fmt.Errorf("%q is not on the watchlist", name)
	}
	e.Category = c
	return nil
}

// EnsureHolding tags the named entry as a holding, creating a minimal entry
// when the stock is not yet watched. Opening a position calls this so every
// holding is visible on the watchlist.
func (w *Watchlist) EnsureHolding(name, code string, market Market, price float64) *Entry {
	e := w.FindMatch(name)
	if e == nil {
		e = &Entry{
			Name:        name,
			Code:        code,
			Market:      string(market),
			Price:       price,
			State:       FetchResolved,
			LastUpdated: time.Now(),
		}
		w.entries = append(w.entries, e)
	}
	e.Category = CategoryHolding
	return e
}

// Snapshot extracts the current quotes, the read-only view the ledger uses
// to sync position prices.
func (w *Watchlist) Snapshot() []Quote {
	quotes := make([]Quote, 0, len(w.entries))
	for _, e := range w.entries {
		quotes = append(quotes, Quote{Name: e.Name, Price: e.Price})
	}
	return quotes
}

// Sectors maps stock names to resolved industry names, for the sector
// distribution.
func (w *Watchlist) Sectors() map[string]string {
	sectors := make(map[string]string, len(w.entries))
	for _, e := range w.entries {
		if s := e.Sector(); s != "" {
			sectors[e.Name] = s
		}
	}
	return sectors
}
