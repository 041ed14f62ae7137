package alpha

import (
	"testing"
	"time"
)

func TestMarketSnapshot_Stale(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name string
		s    *MarketSnapshot
		want bool
	}{
		{"nil snapshot", nil, true},
		{"zero fetch time", &MarketSnapshot{}, true},
		{"fresh", &MarketSnapshot{FetchedAt: now.Add(-time.Hour)}, false},
		{"just inside the window", &MarketSnapshot{FetchedAt: now.Add(-4*time.Hour + time.Minute)}, false},
		{"past the window", &MarketSnapshot{FetchedAt: now.Add(-4*time.Hour - time.Minute)}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Stale(now); got != tc.want {
				t.Errorf("Stale() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNeutralSentiment(t *testing.T) {
	s := NeutralSentiment()
	if s.SentimentScore != 5 {
		t.Errorf("score = %v, want the neutral 5", s.SentimentScore)
	}
	// Empty but non-nil lists, so rendering needs no special cases.
	if s.Indices == nil || s.LimitUpStocks == nil || s.Opportunities == nil {
		t.Error("fallback lists must be empty, not nil")
	}
	if len(s.Indices)+len(s.LimitUpStocks)+len(s.Opportunities) != 0 {
		t.Error("fallback must not invent data")
	}
}
