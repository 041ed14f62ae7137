package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha"
	"github.com/alphatrack/alpha/renderer"
)

// openCmd holds the flags for the 'open' subcommand.
type openCmd struct {
	name     string
	code     string
	market   string
	price    float64
	quantity float64
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open a new simulated position" }
func (*openCmd) Usage() string {
	return `alf open -name <name> -market <CN|US|HK> -p <price> -q <quantity> [-code <code>]

  Opens a position at the entry price, debits its cost from cash and
  tags the stock as a holding on the watchlist. The stock is then
  researched and the returned market price applied; if the research
  fails the position keeps its entry price.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "stock name")
	f.StringVar(&c.code, "code", "", "exchange code")
	f.StringVar(&c.market, "market", "CN", "trading venue (CN, US or HK)")
	f.Float64Var(&c.price, "p", 0, "entry price")
	f.Float64Var(&c.quantity, "q", 0, "quantity")
}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return errorf("-name is required")
	}
	market, err := alpha.ParseMarket(c.market)
	if err != nil {
		return errorf("%v", err)
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	pos, err := state.OpenPosition(ctx, c.name, c.code, market, c.price, c.quantity)
	if err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("opened %s: %s @ %s (id %s)\n", pos.Name, pos.Quantity, pos.CostPrice.Amount().StringFixed(2), pos.ID)
	fmt.Printf("cash: %s\n", state.Ledger().CashBalance())
	return subcommands.ExitSuccess
}

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	price    float64
	quantity float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "add to an existing position" }
func (*buyCmd) Usage() string {
	return `alf buy <position> -p <price> -q <quantity>

  Buys more of the position, referenced by name or id. The cost price
  becomes the weighted average of all lots.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.price, "p", 0, "trade price")
	f.Float64Var(&c.quantity, "q", 0, "quantity")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return executeTrade(ctx, f, alpha.Buy, c.quantity, c.price)
}

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	price    float64
	quantity float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "reduce or close a position" }
func (*sellCmd) Usage() string {
	return `alf sell <position> -p <price> -q <quantity>

  Sells part of the position, referenced by name or id, crediting the
  proceeds to cash. Selling the full quantity closes the position.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.price, "p", 0, "trade price")
	f.Float64Var(&c.quantity, "q", 0, "quantity")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return executeTrade(ctx, f, alpha.Sell, c.quantity, c.price)
}

func executeTrade(ctx context.Context, f *flag.FlagSet, side alpha.TradeSide, quantity, price float64) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected a position name or id")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	pos := state.FindPosition(f.Arg(0))
	if pos == nil {
		return errorf("no open position %q", f.Arg(0))
	}
	trade, err := state.Trade(pos.ID, side, quantity, price)
	if err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("%s %s %s @ %s, total %s\n", trade.Side, trade.Quantity, trade.Name, trade.Price.Amount().StringFixed(2), trade.Amount)
	fmt.Printf("cash: %s\n", state.Ledger().CashBalance())
	return subcommands.ExitSuccess
}

// portfolioCmd holds the flags for the 'portfolio' subcommand.
type portfolioCmd struct {
	dist    bool
	refresh bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio" }
func (*portfolioCmd) Usage() string {
	return `alf portfolio [-dist] [-refresh]

  Displays positions, cash and unrealized P/L. With -dist, also the
  distribution by market, industry and cash vs equity. With -refresh,
  re-researches every position first and applies the fresh prices.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dist, "dist", false, "include the distribution breakdown")
	f.BoolVar(&c.refresh, "refresh", false, "refresh every position price first")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if c.refresh {
		failed, err := state.RefreshPortfolio(ctx)
		if err != nil {
			return errorf("%v", err)
		}
		for _, name := range failed {
			fmt.Printf("refresh failed for %s, previous price kept\n", name)
		}
	}
	printMarkdown(renderer.PortfolioMarkdown(state.Ledger()))
	if c.dist {
		printMarkdown(renderer.DistributionMarkdown(state.Ledger(), state.Watchlist().Sectors()))
	}
	return subcommands.ExitSuccess
}

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the trade log" }
func (*tradesCmd) Usage() string {
	return `alf trades

  Displays every executed trade in order.
`
}
func (*tradesCmd) SetFlags(*flag.FlagSet) {}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.TradesMarkdown(state.Ledger().Trades()))
	return subcommands.ExitSuccess
}

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	timeRange string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the total-asset history" }
func (*historyCmd) Usage() string {
	return `alf history [-r <1M|3M|1Y|ALL>]

  Displays the daily total-asset series for the selected range.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeRange, "r", "ALL", "time range (1M, 3M, 1Y or ALL)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	r, err := alpha.ParseTimeRange(c.timeRange)
	if err != nil {
		return errorf("%v", err)
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	points := state.History().Select(r, alpha.Today())
	printMarkdown(renderer.HistoryMarkdown(points, r))
	return subcommands.ExitSuccess
}
