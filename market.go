package alpha

import (
	"time"

	"github.com/alphatrack/alpha/research"
)

// marketTTL is how long a sentiment snapshot stays fresh.
const marketTTL = 4 * time.Hour

// MarketSnapshot is a cached market sentiment report with its fetch time.
type MarketSnapshot struct {
	Sentiment research.MarketSentiment `json:"sentiment"`
	FetchedAt time.Time                `json:"fetchedAt"`
}

// Stale reports whether the snapshot is missing or older than four hours at
// the given instant.
func (s *MarketSnapshot) Stale(now time.Time) bool {
	return s == nil || s.FetchedAt.IsZero() || now.Sub(s.FetchedAt) > marketTTL
}

// NeutralSentiment is the placeholder shown when no sentiment report can be
// fetched: a middling score and no highlighted stocks.
func NeutralSentiment() research.MarketSentiment {
	return research.MarketSentiment{
		SentimentScore: 5,
		Indices:        []research.MarketIndex{},
		LimitUpStocks:  []research.LimitUpStock{},
		Opportunities:  []research.Opportunity{},
	}
}
