// Package cmd implements the CLI application to run the investment tracker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/alphatrack/alpha"
	"github.com/alphatrack/alpha/research"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "watchlist")
	c.Register(&listCmd{}, "watchlist")
	c.Register(&showCmd{}, "watchlist")
	c.Register(&refreshCmd{}, "watchlist")
	c.Register(&groupCmd{}, "watchlist")
	c.Register(&removeCmd{}, "watchlist")

	c.Register(&marketCmd{}, "market")

	c.Register(&trackCmd{}, "topics")
	c.Register(&topicsCmd{}, "topics")
	c.Register(&untrackCmd{}, "topics")
	c.Register(&favCmd{}, "topics")
	c.Register(&unfavCmd{}, "topics")
	c.Register(&favsCmd{}, "topics")

	c.Register(&noteCmd{}, "journal")
	c.Register(&notesCmd{}, "journal")
	c.Register(&doneCmd{}, "journal")
	c.Register(&editNoteCmd{}, "journal")
	c.Register(&rmNoteCmd{}, "journal")
	c.Register(&analyzeCmd{}, "journal")
	c.Register(&reflectCmd{}, "journal")

	c.Register(&openCmd{}, "portfolio")
	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&portfolioCmd{}, "portfolio")
	c.Register(&tradesCmd{}, "portfolio")
	c.Register(&historyCmd{}, "portfolio")

	c.Register(&langCmd{}, "settings")
	c.Register(&docsCmd{}, "settings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", defaultDataDir(), "Path to the data folder")
var strict = flag.Bool("strict", false, "Reject non-positive prices and quantities, and oversells")
var verbose = flag.Bool("v", false, "Log research gateway activity")

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".alpha")
	}
	return ".alpha"
}

// openState loads the full application state from the data folder. When no
// API key is configured the research gateway is replaced by a stub, so
// commands that do not need research keep working.
func openState(ctx context.Context) (*alpha.State, error) {
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	var ai research.Researcher
	gw, err := research.NewGateway(ctx)
	if err != nil {
		log.Printf("warning: %v, research commands will fail", err)
		ai = research.Unavailable{}
	} else {
		ai = gw
	}
	store, err := alpha.NewDirStore(*dataDir)
	if err != nil {
		return nil, err
	}
	state, err := alpha.Open(store, ai)
	if err != nil {
		return nil, err
	}
	if *strict {
		state.SetPolicy(alpha.Strict)
	}
	return state, nil
}

// errorf prints the error on stderr and returns the failure status.
func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot initialize.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
