package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha"
	"github.com/alphatrack/alpha/renderer"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "research a stock and add it to the watchlist" }
func (*addCmd) Usage() string {
	return `alf add <name>

  Runs AI research on the stock and adds it to the watchlist. If the
  research fails, the watchlist is left untouched.
`
}
func (*addCmd) SetFlags(*flag.FlagSet) {}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one stock name")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	entry, err := state.AddStock(ctx, f.Arg(0))
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.StockMarkdown(entry))
	return subcommands.ExitSuccess
}

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the watchlist" }
func (*listCmd) Usage() string {
	return `alf list

  Displays the watched stocks, holdings first, then by category and
  freshness.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.WatchlistMarkdown(state.Watchlist().Entries()))
	return subcommands.ExitSuccess
}

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the full research report of a watched stock" }
func (*showCmd) Usage() string {
	return `alf show <name>

  Displays the last research report for the stock, including the
  intrinsic-value estimate.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one stock name")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	entry := state.Watchlist().Find(f.Arg(0))
	if entry == nil {
		return errorf("%q is not on the watchlist", f.Arg(0))
	}
	printMarkdown(renderer.StockMarkdown(entry))
	return subcommands.ExitSuccess
}

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	all bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "re-run research on watched stocks" }
func (*refreshCmd) Usage() string {
	return `alf refresh [-all] [<name>]

  Re-runs research on one stock, or on the whole watchlist with -all.
  A stock whose refresh fails keeps its previous report.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "refresh every watched stock")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if c.all {
		failed, err := state.RefreshAllStocks(ctx)
		if err != nil {
			return errorf("%v", err)
		}
		for _, name := range failed {
			fmt.Printf("refresh failed for %s, previous report kept\n", name)
		}
		printMarkdown(renderer.WatchlistMarkdown(state.Watchlist().Entries()))
		return subcommands.ExitSuccess
	}
	if f.NArg() != 1 {
		return errorf("expected a stock name, or -all")
	}
	entry, err := state.RefreshStock(ctx, f.Arg(0))
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.StockMarkdown(entry))
	return subcommands.ExitSuccess
}

// groupCmd holds the flags for the 'group' subcommand.
type groupCmd struct{}

func (*groupCmd) Name() string     { return "group" }
func (*groupCmd) Synopsis() string { return "reclassify a watched stock" }
func (*groupCmd) Usage() string {
	return `alf group <name> <holding|strong|medium|normal>

  Moves the stock into another watch category.
`
}
func (*groupCmd) SetFlags(*flag.FlagSet) {}

func (c *groupCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return errorf("expected a stock name and a category")
	}
	category, err := alpha.ParseCategory(f.Arg(1))
	if err != nil {
		return errorf("%v", err)
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.SetCategory(f.Arg(0), category); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("%s moved to %s\n", f.Arg(0), category)
	return subcommands.ExitSuccess
}

// removeCmd holds the flags for the 'remove' subcommand.
type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a stock from the watchlist" }
func (*removeCmd) Usage() string {
	return `alf remove <name>

  Removes the stock from the watchlist. Open positions are untouched.
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one stock name")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.RemoveStock(f.Arg(0)); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("%s removed from the watchlist\n", f.Arg(0))
	return subcommands.ExitSuccess
}
