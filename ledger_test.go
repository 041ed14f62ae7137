package alpha

import (
	"testing"

	"github.com/shopspring/decimal"
)

// newTestLedger creates an empty permissive ledger with the default cash.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger("CNY")
}

// openFoo opens the reference position used across trade tests.
func openFoo(t *testing.T, l *Ledger) *Position {
	t.Helper()
	pos, err := l.OpenPosition("Foo", "F1", MarketCN, M(10.00, ""), Q(100))
	if err != nil {
		t.Fatalf("OpenPosition() failed: %v", err)
	}
	return pos
}

func wantCash(t *testing.T, l *Ledger, want float64) {
	t.Helper()
	if got := l.Cash(); !got.Equal(decimal.NewFromFloat(want)) {
		t.Fatalf("cash = %s, want %v", got, want)
	}
}

func TestLedger_TradeLifecycle(t *testing.T) {
	// Opening, averaging up and selling out must keep the cash balance
	// reconciled with the trade notionals at every step.
	l := newTestLedger(t)
	wantCash(t, l, 100000)

	// Open 100 @ 10.00.
	pos := openFoo(t, l)
	wantCash(t, l, 99000)
	if !pos.Quantity.Equal(Q(100)) || !pos.CostPrice.Amount().Equal(decimal.NewFromFloat(10.00)) {
		t.Fatalf("position after open = %s @ %s, want 100 @ 10", pos.Quantity, pos.CostPrice.Amount())
	}
	if pos.Currency() != "CNY" {
		t.Errorf("currency = %q, want CNY", pos.Currency())
	}

	// Buy 100 more @ 12.00: cost must blend to 11.00.
	if _, err := l.ExecuteTrade(pos.ID, Buy, Q(100), M(12.00, "")); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	wantCash(t, l, 97800)
	if !pos.Quantity.Equal(Q(200)) {
		t.Fatalf("quantity after buy = %s, want 200", pos.Quantity)
	}
	if !pos.CostPrice.Amount().Equal(decimal.NewFromFloat(11.00)) {
		t.Fatalf("cost after buy = %s, want 11.00", pos.CostPrice.Amount())
	}
	if !pos.CurrentPrice.Amount().Equal(decimal.NewFromFloat(12.00)) {
		t.Fatalf("current price after buy = %s, want 12.00", pos.CurrentPrice.Amount())
	}

	// Sell everything @ 15.00: position removed, proceeds credited.
	if _, err := l.ExecuteTrade(pos.ID, Sell, Q(200), M(15.00, "")); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	wantCash(t, l, 100800)
	if len(l.Positions()) != 0 {
		t.Fatalf("positions after full sell = %d, want 0", len(l.Positions()))
	}
	if got := len(l.Trades()); got != 3 {
		t.Errorf("trade log length = %d, want 3", got)
	}
}

func TestLedger_WeightedAverageInvariant(t *testing.T) {
	// After any buy, cost price times quantity must equal the sum of every
	// lot's notional, exactly.
	testCases := []struct {
		name   string
		buys   [][2]float64 // price, quantity
		want   float64      // expected cost price
		shares float64
	}{
		{"equal lots", [][2]float64{{10, 100}, {12, 100}}, 11, 200},
		{"uneven lots", [][2]float64{{10, 100}, {20, 50}}, 13.3333333333, 150},
		{"repeated small buys", [][2]float64{{3.33, 7}, {3.41, 13}, {3.29, 11}}, 3.3493548387, 31},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t)
			pos, err := l.OpenPosition("Foo", "", MarketCN, M(tc.buys[0][0], ""), Q(tc.buys[0][1]))
			if err != nil {
				t.Fatal(err)
			}
			total := decimal.NewFromFloat(tc.buys[0][0]).Mul(decimal.NewFromFloat(tc.buys[0][1]))
			for _, buy := range tc.buys[1:] {
				if _, err := l.ExecuteTrade(pos.ID, Buy, Q(buy[1]), M(buy[0], "")); err != nil {
					t.Fatal(err)
				}
				total = total.Add(decimal.NewFromFloat(buy[0]).Mul(decimal.NewFromFloat(buy[1])))
			}
			// The blend may truncate on a non-terminating division, so the
			// identity is checked to a tight tolerance, not exactly.
			if got := pos.CostPrice.Mul(pos.Quantity).Amount(); got.Sub(total).Abs().GreaterThan(decimal.New(1, -10)) {
				t.Errorf("cost*qty = %s, want %s", got, total)
			}
			if !pos.Quantity.Equal(Q(tc.shares)) {
				t.Errorf("quantity = %s, want %v", pos.Quantity, tc.shares)
			}
			want := decimal.NewFromFloat(tc.want)
			if got := pos.CostPrice.Amount(); got.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(0.000001)) {
				t.Errorf("cost price = %s, want about %s", got, want)
			}
		})
	}
}

func TestLedger_OversellClamps(t *testing.T) {
	// Permissive policy: selling more than held closes the position but
	// still credits the full requested notional.
	l := newTestLedger(t)
	pos := openFoo(t, l)

	if _, err := l.ExecuteTrade(pos.ID, Sell, Q(150), M(10.00, "")); err != nil {
		t.Fatalf("oversell failed: %v", err)
	}
	if len(l.Positions()) != 0 {
		t.Fatalf("positions after oversell = %d, want 0", len(l.Positions()))
	}
	// 100000 - 1000 + 1500
	wantCash(t, l, 100500)
}

func TestLedger_SellKeepsCostPrice(t *testing.T) {
	l := newTestLedger(t)
	pos := openFoo(t, l)

	if _, err := l.ExecuteTrade(pos.ID, Sell, Q(40), M(14.00, "")); err != nil {
		t.Fatal(err)
	}
	if !pos.Quantity.Equal(Q(60)) {
		t.Errorf("quantity = %s, want 60", pos.Quantity)
	}
	if !pos.CostPrice.Amount().Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("cost price changed on sell: %s", pos.CostPrice.Amount())
	}
	if !pos.CurrentPrice.Amount().Equal(decimal.NewFromFloat(14.00)) {
		t.Errorf("current price = %s, want 14.00", pos.CurrentPrice.Amount())
	}
}

func TestLedger_StrictPolicy(t *testing.T) {
	testCases := []struct {
		name string
		run  func(l *Ledger, pos *Position) error
	}{
		{"zero price open", func(l *Ledger, _ *Position) error {
			_, err := l.OpenPosition("Bar", "", MarketCN, M(0, ""), Q(10))
			return err
		}},
		{"negative quantity open", func(l *Ledger, _ *Position) error {
			_, err := l.OpenPosition("Bar", "", MarketCN, M(10, ""), Q(-5))
			return err
		}},
		{"zero price buy", func(l *Ledger, pos *Position) error {
			_, err := l.ExecuteTrade(pos.ID, Buy, Q(10), M(0, ""))
			return err
		}},
		{"oversell", func(l *Ledger, pos *Position) error {
			_, err := l.ExecuteTrade(pos.ID, Sell, Q(150), M(10, ""))
			return err
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t)
			pos := openFoo(t, l)
			l.SetPolicy(Strict)
			cash := l.Cash()
			if err := tc.run(l, pos); err == nil {
				t.Fatal("expected a rejection, got nil")
			}
			if !l.Cash().Equal(cash) {
				t.Errorf("cash moved on a rejected trade: %s -> %s", cash, l.Cash())
			}
			if !pos.Quantity.Equal(Q(100)) {
				t.Errorf("quantity moved on a rejected trade: %s", pos.Quantity)
			}
		})
	}
}

func TestLedger_UnknownPosition(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.ExecuteTrade("nope", Buy, Q(1), M(1, "")); err == nil {
		t.Fatal("expected an error for an unknown position")
	}
}

func TestLedger_CurrencyFollowsMarket(t *testing.T) {
	testCases := []struct {
		market Market
		want   string
	}{
		{MarketCN, "CNY"},
		{MarketUS, "USD"},
		{MarketHK, "HKD"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.market), func(t *testing.T) {
			l := newTestLedger(t)
			pos, err := l.OpenPosition("X", "", tc.market, M(5, ""), Q(1))
			if err != nil {
				t.Fatal(err)
			}
			if pos.Currency() != tc.want {
				t.Errorf("currency = %q, want %q", pos.Currency(), tc.want)
			}
			if pos.CostPrice.Currency() != tc.want {
				t.Errorf("cost currency = %q, want %q", pos.CostPrice.Currency(), tc.want)
			}
		})
	}
}

func TestLedger_SyncFromWatchlist(t *testing.T) {
	l := newTestLedger(t)
	pos := openFoo(t, l)

	updated := l.SyncFromWatchlist([]Quote{
		{Name: "Foo", Price: 13.50},
		{Name: "Unrelated", Price: 99},
	})
	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}
	if !pos.CurrentPrice.Amount().Equal(decimal.NewFromFloat(13.50)) {
		t.Errorf("current price = %s, want 13.50", pos.CurrentPrice.Amount())
	}
	// Cost price and cash never move on a price sync.
	if !pos.CostPrice.Amount().Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("cost price moved on sync: %s", pos.CostPrice.Amount())
	}
	wantCash(t, l, 99000)

	// A zero quote is ignored.
	if n := l.SyncFromWatchlist([]Quote{{Name: "Foo", Price: 0}}); n != 0 {
		t.Errorf("zero quote applied, updated = %d", n)
	}
}

func TestLedger_SyncMatchesBestEffortNames(t *testing.T) {
	l := newTestLedger(t)
	pos := openFoo(t, l)

	// A watchlist entry under a longer display name still hits the position.
	if n := l.SyncFromWatchlist([]Quote{{Name: "Foo Inc", Price: 14}}); n != 1 {
		t.Fatalf("updated = %d, want 1", n)
	}
	if !pos.CurrentPrice.Amount().Equal(decimal.NewFromInt(14)) {
		t.Errorf("current price = %s, want 14", pos.CurrentPrice.Amount())
	}

	// An exact name wins over a substring match.
	updated := l.SyncFromWatchlist([]Quote{
		{Name: "Foo Inc", Price: 15},
		{Name: "foo", Price: 16},
	})
	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}
	if !pos.CurrentPrice.Amount().Equal(decimal.NewFromInt(16)) {
		t.Errorf("current price = %s, want the exact match 16", pos.CurrentPrice.Amount())
	}
}

func TestLedger_NegativeBuyNetsToZero(t *testing.T) {
	// A negative permissive buy that nets the position to exactly zero must
	// close it, never divide by zero.
	l := newTestLedger(t)
	pos := openFoo(t, l)

	if _, err := l.ExecuteTrade(pos.ID, Buy, Q(-100), M(5.0, "")); err != nil {
		t.Fatalf("ExecuteTrade() failed: %v", err)
	}
	if len(l.Positions()) != 0 {
		t.Fatal("position not removed at zero quantity")
	}
	// Cash still reconciles: 100000 - 1000 - (-100 * 5).
	wantCash(t, l, 99500)

	// Netting below zero clamps the quantity like an oversell.
	pos = openFoo(t, l)
	if _, err := l.ExecuteTrade(pos.ID, Buy, Q(-150), M(5.0, "")); err != nil {
		t.Fatalf("ExecuteTrade() failed: %v", err)
	}
	if len(l.Positions()) != 0 {
		t.Fatal("position survived a below-zero net")
	}
}

func TestPosition_JSONRoundTrip(t *testing.T) {
	l := newTestLedger(t)
	pos, err := l.OpenPosition("Foo", "F1", MarketUS, M(10.50, ""), Q(30))
	if err != nil {
		t.Fatal(err)
	}
	data, err := pos.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var got Position
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if got.ID != pos.ID || got.Name != "Foo" || got.Market != MarketUS {
		t.Errorf("round trip lost identity: %+v", got)
	}
	if !got.CostPrice.Equal(pos.CostPrice) || !got.Quantity.Equal(pos.Quantity) {
		t.Errorf("round trip lost figures: %+v", got)
	}
}
