// Package research delegates free-text financial questions to the Gemini API
// with Google Search grounding, and decodes the structured answers the
// application consumes. The gateway is treated as an unreliable, high-latency
// oracle: every call can fail, and callers are expected to degrade gracefully.
package research

import "context"

// Language selects the language of the generated text content.
type Language string

const (
	Chinese Language = "zh"
	English Language = "en"
)

// ParseLanguage parses a language code, defaulting to Chinese.
func ParseLanguage(s string) Language {
	if s == string(English) {
		return English
	}
	return Chinese
}

// TrendPoint is one year of a financial trend series.
type TrendPoint struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Industry is the sector classification of a researched stock.
type Industry struct {
	Name           string  `json:"name"`
	SentimentScore float64 `json:"sentimentScore"` // 0-10
}

// BusinessRatio is the domestic/overseas revenue split.
type BusinessRatio struct {
	Domestic float64 `json:"domestic"`
	Overseas float64 `json:"overseas"`
}

// Financials is the balance-sheet extract used by the valuation heuristic.
// All figures are normalized to billions by the prompt.
type Financials struct {
	NetAssets         float64 `json:"netAssets"`
	LastYearNetProfit float64 `json:"lastYearNetProfit"`
	MarketCap         float64 `json:"marketCap"`
	Currency          string  `json:"currency"`
	FiscalYear        string  `json:"fiscalYear"`
}

// StockAnalysis is the structured research report for a single stock.
type StockAnalysis struct {
	Market              string        `json:"market"` // CN, US, HK or OTHER
	Price               float64       `json:"price,omitempty"`
	ChangePercent       float64       `json:"changePercent,omitempty"`
	CompanyNews         string        `json:"companyNews"`
	MainBusiness        string        `json:"mainBusiness"`
	NewBusinessProgress string        `json:"newBusinessProgress"`
	Industry            Industry      `json:"industry"`
	ManagementVoice     string        `json:"managementVoice"`
	LatestReport        string        `json:"latestReport"`
	GrossMarginTrend    []TrendPoint  `json:"grossMarginTrend"`
	MarketShareTrend    []TrendPoint  `json:"marketShareTrend"`
	CoreBarrier         string        `json:"coreBarrier"`
	BusinessRatio       BusinessRatio `json:"businessRatio"`
	FreeCashFlowTrend   []TrendPoint  `json:"freeCashFlowTrend"`
	Financials          *Financials   `json:"financials,omitempty"`
}

// MarketIndex is the current level of one market index.
type MarketIndex struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// LimitUpStock is one representative limit-up mover of the day.
type LimitUpStock struct {
	Name            string `json:"name"`
	Code            string `json:"code"`
	Time            string `json:"time"`
	Reason          string `json:"reason"`
	UniqueAdvantage string `json:"uniqueAdvantage,omitempty"`
	HotspotDuration string `json:"hotspotDuration,omitempty"`
	LogicType       string `json:"logicType,omitempty"`
}

// OpportunityStock is one pick inside a market opportunity strategy.
type OpportunityStock struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Opportunity is one currently active selection strategy.
type Opportunity struct {
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Stocks      []OpportunityStock `json:"stocks"`
}

// MarketSentiment is the whole-market dashboard snapshot.
type MarketSentiment struct {
	SentimentScore float64        `json:"sentimentScore"` // 0-10
	Indices        []MarketIndex  `json:"indices"`
	LimitUpStocks  []LimitUpStock `json:"limitUpStocks"`
	Opportunities  []Opportunity  `json:"marketOpportunities"`
}

// TopicAnalysis is the research report for a thematic keyword.
type TopicAnalysis struct {
	Summary        string   `json:"summary"`
	SentimentScore float64  `json:"sentimentScore"` // 0-10
	Catalyst       string   `json:"catalyst"`
	RelatedStocks  []string `json:"relatedStocks"`
}

// ReflectionAnalysis is the coaching feedback for a single journal entry.
type ReflectionAnalysis struct {
	RootCause  string `json:"rootCause"`
	Prevention string `json:"prevention"`
}

// ReflectionSummary is the aggregate coaching report over many entries.
type ReflectionSummary struct {
	Content   string   `json:"content"`
	KeyPoints []string `json:"keyPoints"`
}

// Researcher is the port the application depends on. Gateway implements it
// against the Gemini API; tests substitute a stub.
type Researcher interface {
	StockAnalysis(ctx context.Context, name string, lang Language) (*StockAnalysis, error)
	MarketSentiment(ctx context.Context, lang Language) (*MarketSentiment, error)
	TopicAnalysis(ctx context.Context, keyword string, lang Language) (*TopicAnalysis, error)
	ReflectionAnalysis(ctx context.Context, entry string, lang Language) (*ReflectionAnalysis, error)
	ReflectionSummary(ctx context.Context, entries []string, lang Language) (*ReflectionSummary, error)
}

// Unavailable is a Researcher that fails every request. It stands in for the
// gateway when no API key is configured, so that commands that do not need
// research keep working.
type Unavailable struct{}

func (Unavailable) StockAnalysis(context.Context, string, Language) (*StockAnalysis, error) {
	return nil, ErrUnavailable
}
func (Unavailable) MarketSentiment(context.Context, Language) (*MarketSentiment, error) {
	return nil, ErrUnavailable
}
func (Unavailable) TopicAnalysis(context.Context, string, Language) (*TopicAnalysis, error) {
	return nil, ErrUnavailable
}
func (Unavailable) ReflectionAnalysis(context.Context, string, Language) (*ReflectionAnalysis, error) {
	return nil, ErrUnavailable
}
func (Unavailable) ReflectionSummary(context.Context, []string, Language) (*ReflectionSummary, error) {
	return nil, ErrUnavailable
}
