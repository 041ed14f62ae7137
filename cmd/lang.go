package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/alphatrack/alpha/research"
)

// langCmd holds the flags for the 'lang' subcommand.
type langCmd struct{}

func (*langCmd) Name() string     { return "lang" }
func (*langCmd) Synopsis() string { return "display or set the research language" }
func (*langCmd) Usage() string {
	return `alf lang [zh|en]

  Displays the language research reports are generated in, or sets it.
`
}
func (*langCmd) SetFlags(*flag.FlagSet) {}

func (c *langCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if f.NArg() == 0 {
		fmt.Println(state.Lang())
		return subcommands.ExitSuccess
	}
	lang := research.ParseLanguage(f.Arg(0))
	if err := state.SetLang(lang); err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("research language set to %s\n", lang)
	return subcommands.ExitSuccess
}
