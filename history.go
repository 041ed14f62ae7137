package alpha

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AssetPoint is the total-asset figure recorded for one day.
type AssetPoint struct {
	Date  Date
	Value decimal.Decimal
}

// MarshalJSON implements the json.Marshaler interface for AssetPoint.
func (p AssetPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", p.Date)
	w.Append("value", p.Value)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for AssetPoint.
func (p *AssetPoint) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date  Date            `json:"date"`
		Value decimal.Decimal `json:"value"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	p.Date = temp.Date
	p.Value = temp.Value
	return nil
}

// AssetHistory is the day-granularity series of total-asset snapshots, kept
// sorted by date with at most one point per day.
type AssetHistory struct {
	points []AssetPoint
}

// NewAssetHistory builds a history from persisted points, sorting and
// deduplicating them (first point per day wins).
func NewAssetHistory(points []AssetPoint) *AssetHistory {
	h := &AssetHistory{}
	for _, p := range points {
		h.Record(p.Date, p.Value)
	}
	return h
}

// Points returns the full series in date order. The slice is shared; callers
// must not mutate it.
func (h *AssetHistory) Points() []AssetPoint { return h.points }

// Record stores the total-asset figure for a day. The first value recorded
// for a date wins: recording again on the same day is a no-op, so the series
// captures the start-of-day figure. It reports whether a point was added.
func (h *AssetHistory) Record(on Date, value decimal.Decimal) bool {
	i := sort.Search(len(h.points), func(i int) bool { return !h.points[i].Date.Before(on) })
	if i < len(h.points) && h.points[i].Date == on {
		return false
	}
	h.points = append(h.points, AssetPoint{})
	copy(h.points[i+1:], h.points[i:])
	h.points[i] = AssetPoint{Date: on, Value: value}
	return true
}

// TimeRange selects how far back a history view reaches.
type TimeRange string

const (
	Range1M  TimeRange = "1M"
	Range3M  TimeRange = "3M"
	Range1Y  TimeRange = "1Y"
	RangeAll TimeRange = "ALL"
)

// ParseTimeRange parses a time range selector.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case Range1M, Range3M, Range1Y, RangeAll:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("unknown range %q (want 1M, 3M, 1Y or ALL)", s)
	}
}

// Select returns the points falling within the range, counted back from the
// given day. RangeAll returns the whole series.
func (h *AssetHistory) Select(r TimeRange, today Date) []AssetPoint {
	if r == RangeAll {
		return h.points
	}
	var from Date
	switch r {
	case Range1M:
		from = today.AddMonth(-1)
	case Range3M:
		from = today.AddMonth(-3)
	case Range1Y:
		from = today.AddMonth(-12)
	default:
		return h.points
	}
	i := sort.Search(len(h.points), func(i int) bool { return !h.points[i].Date.Before(from) })
	return h.points[i:]
}
