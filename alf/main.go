package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"

	"github.com/alphatrack/alpha/cmd"
)

func main() {
	// A .env file is the easiest place to keep GEMINI_API_KEY.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion answers shell completion requests and exits, or returns
// immediately on a normal run.
func completion() {
	sub := map[string]*complete.Command{}
	for _, name := range []string{
		"add", "list", "show", "refresh", "group", "remove",
		"market",
		"track", "topics", "untrack", "fav", "unfav", "favs",
		"note", "notes", "done", "edit-note", "rm-note", "analyze", "reflect",
		"open", "buy", "sell", "portfolio", "trades", "history",
		"lang", "docs",
	} {
		sub[name] = &complete.Command{}
	}
	(&complete.Command{Sub: sub}).Complete("alf")
}
