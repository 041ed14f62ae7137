package alpha

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alphatrack/alpha/research"
)

func TestLedger_PLPercentZeroBasis(t *testing.T) {
	// An empty ledger has a zero cost basis; the gain must report 0%, not
	// NaN or an infinity.
	l := newTestLedger(t)
	if got := l.PLPercent(); got != 0 {
		t.Errorf("PLPercent on empty ledger = %v, want 0", got)
	}
}

func TestLedger_Aggregates(t *testing.T) {
	l := newTestLedger(t)
	pos := openFoo(t, l) // 100 @ 10.00
	l.SyncFromWatchlist([]Quote{{Name: "Foo", Price: 12}})

	if got := l.MarketValue().Amount(); !got.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("market value = %s, want 1200", got)
	}
	if got := l.CostBasis().Amount(); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("cost basis = %s, want 1000", got)
	}
	// 99000 cash + 1200 equity
	if got := l.TotalAssets().Amount(); !got.Equal(decimal.NewFromInt(100200)) {
		t.Errorf("total assets = %s, want 100200", got)
	}
	if got := l.PL().Amount(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("PL = %s, want 200", got)
	}
	if got, want := l.PLPercent(), Percent(20); !got.Equal(want) {
		t.Errorf("PLPercent = %v, want %v", got, want)
	}
	if got, want := pos.PLPercent(), Percent(20); !got.Equal(want) {
		t.Errorf("position PLPercent = %v, want %v", got, want)
	}
}

func TestLedger_DistributionByMarket(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.OpenPosition("A", "", MarketCN, M(10, ""), Q(100)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.OpenPosition("B", "", MarketUS, M(20, ""), Q(150)); err != nil {
		t.Fatal(err)
	}

	buckets := l.DistributionByMarket()
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2 (empty HK bucket must be omitted)", len(buckets))
	}
	// Largest first.
	if buckets[0].Label != "US" || buckets[1].Label != "CN" {
		t.Errorf("bucket order = %s, %s, want US, CN", buckets[0].Label, buckets[1].Label)
	}
	if got, want := buckets[0].Weight, Percent(75); !got.Equal(want) {
		t.Errorf("US weight = %v, want %v", got, want)
	}
}

func TestLedger_DistributionBySector(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.OpenPosition("A", "", MarketCN, M(10, ""), Q(100)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.OpenPosition("B", "", MarketCN, M(10, ""), Q(100)); err != nil {
		t.Fatal(err)
	}

	buckets := l.DistributionBySector(map[string]string{"A": "Semiconductors"})
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	labels := map[string]bool{}
	for _, b := range buckets {
		labels[b.Label] = true
	}
	if !labels["Semiconductors"] || !labels[SectorUnknown] {
		t.Errorf("labels = %v, want Semiconductors and %s", labels, SectorUnknown)
	}
}

func TestLedger_DistributionBySectorNameFallback(t *testing.T) {
	// The sector map is keyed by watchlist display names, which need not be
	// byte-identical to position names.
	l := newTestLedger(t)
	if _, err := l.OpenPosition("Foo", "", MarketCN, M(10, ""), Q(100)); err != nil {
		t.Fatal(err)
	}

	buckets := l.DistributionBySector(map[string]string{"Foo Inc": "Autos"})
	if len(buckets) != 1 || buckets[0].Label != "Autos" {
		t.Fatalf("buckets = %+v, want the Autos bucket", buckets)
	}
}

func TestLedger_DistributionCashEquity(t *testing.T) {
	t.Run("positive cash", func(t *testing.T) {
		l := newTestLedger(t)
		openFoo(t, l)
		buckets := l.DistributionCashEquity()
		if len(buckets) != 2 {
			t.Fatalf("buckets = %d, want 2", len(buckets))
		}
		if buckets[0].Label != "Cash" {
			t.Errorf("largest bucket = %s, want Cash", buckets[0].Label)
		}
	})
	t.Run("negative cash clamps to zero", func(t *testing.T) {
		l := newTestLedger(t)
		// Spend more than the starting cash.
		if _, err := l.OpenPosition("Big", "", MarketCN, M(1000, ""), Q(200)); err != nil {
			t.Fatal(err)
		}
		if !l.Cash().IsNegative() {
			t.Fatal("setup failed, cash should be negative")
		}
		buckets := l.DistributionCashEquity()
		if len(buckets) != 1 || buckets[0].Label != "Equity" {
			t.Fatalf("buckets = %+v, want only Equity", buckets)
		}
		if got, want := buckets[0].Weight, Percent(100); !got.Equal(want) {
			t.Errorf("Equity weight = %v, want 100%%", got)
		}
	})
	t.Run("empty ledger omits zero equity", func(t *testing.T) {
		l := newTestLedger(t)
		buckets := l.DistributionCashEquity()
		if len(buckets) != 1 || buckets[0].Label != "Cash" {
			t.Fatalf("buckets = %+v, want only Cash", buckets)
		}
	})
}

func TestValuation(t *testing.T) {
	// Intrinsic value is net assets plus twenty times the year's profit;
	// the verdict band is 80% to 120% of it.
	fin := func(marketCap float64) *research.Financials {
		return &research.Financials{NetAssets: 50, LastYearNetProfit: 5, MarketCap: marketCap}
	}
	// iv = 50 + 5*20 = 150
	testCases := []struct {
		name string
		f    *research.Financials
		want ValuationLabel
	}{
		{"undervalued below 80%", fin(119), Undervalued},
		{"fair at lower edge", fin(120), FairValued},
		{"fair in band", fin(150), FairValued},
		{"fair at upper edge", fin(180), FairValued},
		{"overvalued above 120%", fin(181), Overvalued},
		{"missing financials", nil, NoValuation},
		{"zero market cap", fin(0), NoValuation},
		{"negative intrinsic value", &research.Financials{NetAssets: -100, LastYearNetProfit: 1, MarketCap: 10}, NoValuation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iv, label := Valuation(tc.f)
			if label != tc.want {
				t.Errorf("label = %s, want %s", label, tc.want)
			}
			if tc.want != NoValuation && iv != 150 {
				t.Errorf("iv = %v, want 150", iv)
			}
		})
	}
}
