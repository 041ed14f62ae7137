package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha/renderer"
)

// marketCmd holds the flags for the 'market' subcommand.
type marketCmd struct {
	force bool
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "display the market sentiment dashboard" }
func (*marketCmd) Usage() string {
	return `alf market [-f]

  Displays the market sentiment snapshot: score, indices, limit-up
  movers and current opportunities. The snapshot is cached for four
  hours; -f forces a fresh fetch.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "fetch a fresh snapshot even if the cache is still warm")
}

func (c *marketCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	sentiment, fetchedAt, err := state.MarketSentiment(ctx, c.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, showing cached or neutral data\n", err)
	}
	printMarkdown(renderer.MarketMarkdown(sentiment, fetchedAt))
	return subcommands.ExitSuccess
}
