package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha"
	"github.com/alphatrack/alpha/renderer"
)

// trackCmd holds the flags for the 'track' subcommand.
type trackCmd struct{}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "research a topic and start tracking it" }
func (*trackCmd) Usage() string {
	return `alf track <keyword>

  Runs AI research on the thematic keyword and starts tracking it.
  If the research fails, nothing is tracked.
`
}
func (*trackCmd) SetFlags(*flag.FlagSet) {}

func (c *trackCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return errorf("expected a topic keyword")
	}
	keyword := strings.Join(f.Args(), " ")
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	topic, err := state.TrackTopic(ctx, keyword)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.TopicsMarkdown([]*alpha.Topic{topic}))
	return subcommands.ExitSuccess
}

// topicsCmd holds the flags for the 'topics' subcommand.
type topicsCmd struct {
	refresh bool
}

func (*topicsCmd) Name() string     { return "topics" }
func (*topicsCmd) Synopsis() string { return "display the tracked topics" }
func (*topicsCmd) Usage() string {
	return `alf topics [-refresh]

  Displays the tracked topics, latest first. With -refresh, re-runs
  research on all of them first; topics whose refresh fails keep
  their previous report.
`
}

func (c *topicsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "refresh every topic before displaying")
}

func (c *topicsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if c.refresh {
		failed, err := state.RefreshAllTopics(ctx)
		if err != nil {
			return errorf("%v", err)
		}
		for _, keyword := range failed {
			fmt.Printf("refresh failed for %s, previous report kept\n", keyword)
		}
	}
	printMarkdown(renderer.TopicsMarkdown(state.Topics().All()))
	return subcommands.ExitSuccess
}

// untrackCmd holds the flags for the 'untrack' subcommand.
type untrackCmd struct{}

func (*untrackCmd) Name() string     { return "untrack" }
func (*untrackCmd) Synopsis() string { return "stop tracking a topic" }
func (*untrackCmd) Usage() string {
	return `alf untrack <keyword>

  Stops tracking the topic. Favorites saved from it are kept.
`
}
func (*untrackCmd) SetFlags(*flag.FlagSet) {}

func (c *untrackCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return errorf("expected a topic keyword")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	keyword := strings.Join(f.Args(), " ")
	if err := state.DeleteTopic(keyword); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("stopped tracking %s\n", keyword)
	return subcommands.ExitSuccess
}

// favCmd holds the flags for the 'fav' subcommand.
type favCmd struct{}

func (*favCmd) Name() string     { return "fav" }
func (*favCmd) Synopsis() string { return "pin or unpin a topic's current report" }
func (*favCmd) Usage() string {
	return `alf fav <keyword>

  Pins the topic's current report to the favorites shelf, frozen as
  it is now. Running it again on the same report unpins it.
`
}
func (*favCmd) SetFlags(*flag.FlagSet) {}

func (c *favCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return errorf("expected a topic keyword")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	keyword := strings.Join(f.Args(), " ")
	pinned, err := state.ToggleFavorite(keyword)
	if err != nil {
		return errorf("%v", err)
	}
	if pinned {
		fmt.Printf("%s pinned to favorites\n", keyword)
	} else {
		fmt.Printf("%s unpinned from favorites\n", keyword)
	}
	return subcommands.ExitSuccess
}

// unfavCmd holds the flags for the 'unfav' subcommand.
type unfavCmd struct{}

func (*unfavCmd) Name() string     { return "unfav" }
func (*unfavCmd) Synopsis() string { return "remove a favorite by id" }
func (*unfavCmd) Usage() string {
	return `alf unfav <id>

  Removes one favorite. Ids are shown by 'alf favs'.
`
}
func (*unfavCmd) SetFlags(*flag.FlagSet) {}

func (c *unfavCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected a favorite id")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.RemoveFavorite(f.Arg(0)); err != nil {
		return errorf("%v", err)
	}
	fmt.Println("favorite removed")
	return subcommands.ExitSuccess
}

// favsCmd holds the flags for the 'favs' subcommand.
type favsCmd struct{}

func (*favsCmd) Name() string     { return "favs" }
func (*favsCmd) Synopsis() string { return "display the favorite topic snapshots" }
func (*favsCmd) Usage() string {
	return `alf favs

  Displays the pinned topic snapshots, most recently saved first.
`
}
func (*favsCmd) SetFlags(*flag.FlagSet) {}

func (c *favsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.FavoritesMarkdown(state.Topics().Favorites()))
	return subcommands.ExitSuccess
}
