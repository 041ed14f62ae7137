package alpha

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alphatrack/alpha/research"
)

// MarketValue sums the market value of all positions in the reporting
// currency. Figures are summed scalar-wise across markets, the same
// single-unit convention the cash balance uses.
func (l *Ledger) MarketValue() Money {
	total := decimal.Zero
	for _, p := range l.positions {
		total = total.Add(p.MarketValue().Amount())
	}
	return M(total, l.cur)
}

// CostBasis sums the acquisition cost of all positions.
func (l *Ledger) CostBasis() Money {
	total := decimal.Zero
	for _, p := range l.positions {
		total = total.Add(p.CostValue().Amount())
	}
	return M(total, l.cur)
}

// TotalAssets is the market value of all positions plus the cash balance.
func (l *Ledger) TotalAssets() Money {
	return M(l.MarketValue().Amount().Add(l.cash), l.cur)
}

// PL is the total unrealized gain or loss across positions.
func (l *Ledger) PL() Money { return l.MarketValue().Sub(l.CostBasis()) }

// PLPercent is the unrealized gain relative to the total cost basis, 0% when
// nothing is held.
func (l *Ledger) PLPercent() Percent {
	return GainPercent(l.MarketValue().Amount(), l.CostBasis().Amount())
}

// Bucket is one slice of a portfolio distribution.
type Bucket struct {
	Label  string
	Value  Money
	Weight Percent
}

// SectorUnknown labels positions whose industry has not been resolved yet.
const SectorUnknown = "Unknown"

// DistributionByMarket groups position market value per trading venue.
// Empty buckets are omitted.
func (l *Ledger) DistributionByMarket() []Bucket {
	values := map[string]decimal.Decimal{}
	for _, p := range l.positions {
		values[string(p.Market)] = values[string(p.Market)].Add(p.MarketValue().Amount())
	}
	return l.buckets(values, l.MarketValue().Amount())
}

// DistributionBySector groups position market value per industry. The sectors
// map is keyed by watchlist name and looked up best-effort, so a position
// "Foo" still lands in the sector of the entry "Foo Inc"; positions without
// a resolved industry fall into the SectorUnknown bucket.
func (l *Ledger) DistributionBySector(sectors map[string]string) []Bucket {
	values := map[string]decimal.Decimal{}
	for _, p := range l.positions {
		sector := sectorFor(p.Name, sectors)
		values[sector] = values[sector].Add(p.MarketValue().Amount())
	}
	return l.buckets(values, l.MarketValue().Amount())
}

func sectorFor(name string, sectors map[string]string) string {
	if s := sectors[name]; s != "" {
		return s
	}
	for entry, s := range sectors {
		if nameMatch(entry, name) {
			return s
		}
	}
	return SectorUnknown
}

// DistributionCashEquity splits total assets between invested capital and
// cash. A negative cash balance is clamped to zero for display only; the
// ledger itself keeps the true figure.
func (l *Ledger) DistributionCashEquity() []Bucket {
	cash := l.cash
	if cash.IsNegative() {
		cash = decimal.Zero
	}
	values := map[string]decimal.Decimal{
		"Equity": l.MarketValue().Amount(),
		"Cash":   cash,
	}
	return l.buckets(values, l.MarketValue().Amount().Add(cash))
}

func (l *Ledger) buckets(values map[string]decimal.Decimal, total decimal.Decimal) []Bucket {
	buckets := make([]Bucket, 0, len(values))
	for label, value := range values {
		if value.IsZero() {
			continue
		}
		weight := Percent(0)
		if !total.IsZero() {
			weight = Percent(value.Div(total).InexactFloat64() * 100)
		}
		buckets = append(buckets, Bucket{
			Label:  label,
			Value:  M(value, l.cur),
			Weight: weight,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Value.Equal(buckets[j].Value) {
			return buckets[j].Value.LessThan(buckets[i].Value)
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

// ValuationLabel classifies a market cap against the intrinsic value band.
type ValuationLabel string

const (
	Undervalued ValuationLabel = "undervalued"
	FairValued  ValuationLabel = "fair"
	Overvalued  ValuationLabel = "overvalued"
	NoValuation ValuationLabel = "n/a"
)

// profitMultiple capitalizes one year of net profit into an earnings value.
const profitMultiple = 20

// IntrinsicValue estimates a company's worth as net assets plus twenty times
// last year's net profit, in the same unit as the inputs (billions).
func IntrinsicValue(f research.Financials) float64 {
	return f.NetAssets + f.LastYearNetProfit*profitMultiple
}

// Valuation compares the market cap with the intrinsic value estimate:
// under 80% of it is undervalued, over 120% is overvalued, in between is
// fair. Missing financials yield NoValuation.
func Valuation(f *research.Financials) (iv float64, label ValuationLabel) {
	if f == nil || f.MarketCap == 0 {
		return 0, NoValuation
	}
	iv = IntrinsicValue(*f)
	if iv <= 0 {
		return iv, NoValuation
	}
	switch {
	case f.MarketCap < 0.8*iv:
		return iv, Undervalued
	case f.MarketCap > 1.2*iv:
		return iv, Overvalued
	default:
		return iv, FairValued
	}
}
