package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha/docs"
)

// docsCmd holds the flags for the 'docs' subcommand.
type docsCmd struct{}

func (*docsCmd) Name() string     { return "docs" }
func (*docsCmd) Synopsis() string { return "show documentation" }
func (*docsCmd) Usage() string {
	return `alf docs [<topic>...]

  Shows the documentation for the given topics, or the overview when
  none is given. Use '*' for all topics.
`
}
func (*docsCmd) SetFlags(*flag.FlagSet) {}

func (c *docsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return errorf("reading doc: %v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
