package alpha

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Market identifies the exchange venue a position trades on.
type Market string

const (
	MarketCN Market = "CN"
	MarketUS Market = "US"
	MarketHK Market = "HK"
)

// ParseMarket parses a market code.
func ParseMarket(s string) (Market, error) {
	switch Market(s) {
	case MarketCN, MarketUS, MarketHK:
		return Market(s), nil
	default:
		return "", fmt.Errorf("unknown market %q (want CN, US or HK)", s)
	}
}

// Currency returns the trading currency of the market.
func (m Market) Currency() string {
	switch m {
	case MarketUS:
		return "USD"
	case MarketHK:
		return "HKD"
	default:
		return "CNY"
	}
}

// TradeSide is the direction of a trade.
type TradeSide string

const (
	Buy  TradeSide = "buy"
	Sell TradeSide = "sell"
)

// ParseTradeSide parses a trade side.
func ParseTradeSide(s string) (TradeSide, error) {
	switch TradeSide(s) {
	case Buy, Sell:
		return TradeSide(s), nil
	default:
		return "", fmt.Errorf("unknown trade side %q (want buy or sell)", s)
	}
}

// TradePolicy decides how the ledger treats questionable trade input.
//
// The source application accepted non-positive prices and quantities and
// silently clamped oversells; Permissive preserves that behavior, Strict
// rejects it.
type TradePolicy int

const (
	Permissive TradePolicy = iota
	Strict
)

// Position is one holding in the simulated portfolio.
type Position struct {
	ID           string   // opaque unique id, stable for the position's lifetime
	Name         string   // display name
	Code         string   // exchange code
	Market       Market   // trading venue
	Quantity     Quantity // number of shares or units held, never negative
	CostPrice    Money    // weighted-average acquisition price
	CurrentPrice Money    // last known market price
}

// Currency returns the position's currency, derived from its market.
func (p *Position) Currency() string { return p.Market.Currency() }

// MarketValue is quantity times the last known price.
func (p *Position) MarketValue() Money { return p.CurrentPrice.Mul(p.Quantity) }

// CostValue is quantity times the weighted-average cost.
func (p *Position) CostValue() Money { return p.CostPrice.Mul(p.Quantity) }

// PL is the unrealized gain or loss on the position.
func (p *Position) PL() Money { return p.MarketValue().Sub(p.CostValue()) }

// PLPercent is the unrealized gain relative to the cost basis, 0% on a zero basis.
func (p *Position) PLPercent() Percent {
	return GainPercent(p.MarketValue().Amount(), p.CostValue().Amount())
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Optional("code", p.Code)
	w.Append("market", p.Market)
	w.Append("quantity", p.Quantity)
	w.Append("costPrice", p.CostPrice.Amount())
	w.Append("currentPrice", p.CurrentPrice.Amount())
	w.Append("currency", p.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Position.
func (p *Position) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Code         string          `json:"code"`
		Market       Market          `json:"market"`
		Quantity     Quantity        `json:"quantity"`
		CostPrice    decimal.Decimal `json:"costPrice"`
		CurrentPrice decimal.Decimal `json:"currentPrice"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	cur := temp.Market.Currency()
	p.ID = temp.ID
	p.Name = temp.Name
	p.Code = temp.Code
	p.Market = temp.Market
	p.Quantity = temp.Quantity
	p.CostPrice = M(temp.CostPrice, cur)
	p.CurrentPrice = M(temp.CurrentPrice, cur)
	return nil
}

// Trade is one executed order, kept as an append-only log.
type Trade struct {
	ID       string
	Position string // id of the traded position
	Name     string
	Side     TradeSide
	Quantity Quantity
	Price    Money
	Amount   Money // notional value, price times quantity
	Date     Date
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("position", t.Position)
	w.Append("name", t.Name)
	w.Append("side", t.Side)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	w.Append("amount", t.Amount.Amount())
	w.Append("currency", t.Price.Currency())
	w.Append("date", t.Date)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Trade.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Position string          `json:"position"`
		Name     string          `json:"name"`
		Side     TradeSide       `json:"side"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Date     Date            `json:"date"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Position = temp.Position
	t.Name = temp.Name
	t.Side = temp.Side
	t.Quantity = temp.Quantity
	t.Price = M(temp.Price, temp.Currency)
	t.Amount = M(temp.Amount, temp.Currency)
	t.Date = temp.Date
	return nil
}

// DefaultStartingCash is the uncommitted capital a fresh ledger starts with.
var DefaultStartingCash = decimal.NewFromInt(100_000)

// Ledger owns the simulated portfolio: the set of positions, the cash
// balance and the trade log. Both sides of every operation (cash and
// quantity) are applied within one synchronous call, so the accounting
// identity "cash moved == notional traded" holds after every operation.
type Ledger struct {
	positions []*Position
	trades    []Trade
	cash      decimal.Decimal
	cur       string // reporting currency for aggregate figures
	policy    TradePolicy
}

// NewLedger creates an empty ledger with the default starting cash.
func NewLedger(reportingCurrency string) *Ledger {
	return &Ledger{
		positions: make([]*Position, 0),
		cash:      DefaultStartingCash,
		cur:       reportingCurrency,
	}
}

// RestoreLedger rebuilds a ledger from persisted collections.
func RestoreLedger(positions []*Position, trades []Trade, cash decimal.Decimal, reportingCurrency string) *Ledger {
	return &Ledger{
		positions: positions,
		trades:    trades,
		cash:      cash,
		cur:       reportingCurrency,
	}
}

// SetPolicy selects the trade input policy.
func (l *Ledger) SetPolicy(p TradePolicy) { l.policy = p }

// Positions returns the held positions. The slice is shared; callers must not
// mutate it.
func (l *Ledger) Positions() []*Position { return l.positions }

// Trades returns the append-only trade log.
func (l *Ledger) Trades() []Trade { return l.trades }

// Position returns the position with the given id, or nil if unknown.
func (l *Ledger) Position(id string) *Position {
	for _, p := range l.positions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CashBalance returns the uncommitted capital. It may be negative: there is
// no margin or borrowing-limit enforcement.
func (l *Ledger) CashBalance() Money { return M(l.cash, l.cur) }

// Cash returns the raw cash scalar, for persistence.
func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// OpenPosition creates a new position at the given entry price and debits the
// cash balance by its cost. The current price starts at the entry price until
// fresher research arrives.
func (l *Ledger) OpenPosition(name, code string, market Market, entryPrice Money, quantity Quantity) (*Position, error) {
	currency := market.Currency()
	entryPrice = M(entryPrice.Amount(), currency)
	if l.policy == Strict {
		if !entryPrice.IsPositive() {
			return nil, fmt.Errorf("entry price must be positive, got %s", entryPrice.Amount())
		}
		if !quantity.IsPositive() {
			return nil, fmt.Errorf("quantity must be positive, got %s", quantity)
		}
	}

	pos := &Position{
		ID:           uuid.NewString(),
		Name:         name,
		Code:         code,
		Market:       market,
		Quantity:     quantity,
		CostPrice:    entryPrice,
		CurrentPrice: entryPrice,
	}
	cost := entryPrice.Mul(quantity)
	l.cash = l.cash.Sub(cost.Amount())
	l.positions = append(l.positions, pos)
	l.logTrade(pos, Buy, quantity, entryPrice, cost)
	return pos, nil
}

// ExecuteTrade applies a buy or sell against an existing position.
//
// A buy recomputes the weighted-average cost price: the blended cost of the
// whole position must equal the sum of each lot's cost. A sell leaves the
// cost price unchanged (realized gains are not tracked as a separate line)
// and clamps the quantity at zero under the Permissive policy. A position
// whose quantity reaches zero is removed from the collection.
func (l *Ledger) ExecuteTrade(positionID string, side TradeSide, quantity Quantity, price Money) (*Trade, error) {
	pos := l.Position(positionID)
	if pos == nil {
		return nil, fmt.Errorf("unknown position %q", positionID)
	}
	price = M(price.Amount(), pos.Currency())
	if l.policy == Strict {
		if !price.IsPositive() {
			return nil, fmt.Errorf("trade price must be positive, got %s", price.Amount())
		}
		if !quantity.IsPositive() {
			return nil, fmt.Errorf("trade quantity must be positive, got %s", quantity)
		}
		if side == Sell && quantity.GreaterThan(pos.Quantity) {
			return nil, fmt.Errorf("cannot sell %s units, only %s held", quantity, pos.Quantity)
		}
	}

	amount := price.Mul(quantity)
	switch side {
	case Buy:
		l.cash = l.cash.Sub(amount.Amount())
		newQuantity := pos.Quantity.Add(quantity)
		// A permissive negative buy can net the quantity to zero or below;
		// the cost recompute would divide by zero, so the last cost price
		// stands and the position closes below.
		if newQuantity.IsPositive() {
			totalCost := pos.CostPrice.Mul(pos.Quantity).Add(amount)
			pos.CostPrice = totalCost.Div(newQuantity)
		} else if newQuantity.IsNegative() {
			newQuantity = Q(0)
		}
		pos.Quantity = newQuantity
	case Sell:
		l.cash = l.cash.Add(amount.Amount())
		newQuantity := pos.Quantity.Sub(quantity)
		if newQuantity.IsNegative() {
			newQuantity = Q(0)
		}
		pos.Quantity = newQuantity
	default:
		return nil, fmt.Errorf("unknown trade side %q", side)
	}
	// The trade print is the freshest market quote we have.
	pos.CurrentPrice = price

	trade := l.logTrade(pos, side, quantity, price, amount)
	if pos.Quantity.IsZero() {
		l.remove(pos.ID)
	}
	return trade, nil
}

func (l *Ledger) logTrade(pos *Position, side TradeSide, quantity Quantity, price, amount Money) *Trade {
	trade := Trade{
		ID:       uuid.NewString(),
		Position: pos.ID,
		Name:     pos.Name,
		Side:     side,
		Quantity: quantity,
		Price:    price,
		Amount:   amount,
		Date:     Today(),
	}
	l.trades = append(l.trades, trade)
	return &l.trades[len(l.trades)-1]
}

func (l *Ledger) remove(id string) {
	kept := l.positions[:0]
	for _, p := range l.positions {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	l.positions = kept
}

// Quote is a read-only price observation taken from the watchlist.
type Quote struct {
	Name  string
	Price float64
}

// SyncFromWatchlist projects watchlist prices onto matching positions. The
// dependency is one-directional: the ledger only reads the snapshot, never
// writes back, so no feedback cycle is possible. It returns the number of
// positions updated.
func (l *Ledger) SyncFromWatchlist(quotes []Quote) int {
	updated := 0
	for _, pos := range l.positions {
		var hit *Quote
		for i := range quotes {
			q := &quotes[i]
			if q.Price == 0 || !nameMatch(q.Name, pos.Name) {
				continue
			}
			// An exact name wins over a substring match.
			if strings.EqualFold(q.Name, pos.Name) {
				hit = q
				break
			}
			if hit == nil {
				hit = q
			}
		}
		if hit == nil {
			continue
		}
		price := M(hit.Price, pos.Currency())
		if !price.Equal(pos.CurrentPrice) {
			pos.CurrentPrice = price
			updated++
		}
	}
	return updated
}
