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

// noteCmd holds the flags for the 'note' subcommand.
type noteCmd struct {
	task bool
}

func (*noteCmd) Name() string     { return "note" }
func (*noteCmd) Synopsis() string { return "add a journal entry" }
func (*noteCmd) Usage() string {
	return `alf note [-task] <text>

  Adds an entry to the trading journal. With -task, the entry is a
  checkable task.
`
}

func (c *noteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.task, "task", false, "record the entry as a task")
}

func (c *noteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return errorf("expected the note text")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	kind := alpha.NoteText
	if c.task {
		kind = alpha.NoteTask
	}
	note, err := state.AddNote(strings.Join(f.Args(), " "), kind)
	if err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("noted (id %s)\n", note.ID)
	return subcommands.ExitSuccess
}

// notesCmd holds the flags for the 'notes' subcommand.
type notesCmd struct{}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "display the trading journal" }
func (*notesCmd) Usage() string {
	return `alf notes

  Displays the journal entries, newest first, with the latest
  reflection summary on top.
`
}
func (*notesCmd) SetFlags(*flag.FlagSet) {}

func (c *notesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.JournalMarkdown(state.Journal().Notes(), state.Journal().Summary()))
	return subcommands.ExitSuccess
}

// doneCmd holds the flags for the 'done' subcommand.
type doneCmd struct{}

func (*doneCmd) Name() string     { return "done" }
func (*doneCmd) Synopsis() string { return "toggle a task's completion" }
func (*doneCmd) Usage() string {
	return `alf done <id>

  Marks the task done, or un-done when it already was.
`
}
func (*doneCmd) SetFlags(*flag.FlagSet) {}

func (c *doneCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected a note id")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.ToggleDone(f.Arg(0)); err != nil {
		return errorf("%v", err)
	}
	return subcommands.ExitSuccess
}

// editNoteCmd holds the flags for the 'edit-note' subcommand.
type editNoteCmd struct{}

func (*editNoteCmd) Name() string     { return "edit-note" }
func (*editNoteCmd) Synopsis() string { return "rewrite a journal entry" }
func (*editNoteCmd) Usage() string {
	return `alf edit-note <id> <text>

  Replaces the text of one journal entry. Generated summaries cannot
  be edited.
`
}
func (*editNoteCmd) SetFlags(*flag.FlagSet) {}

func (c *editNoteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return errorf("expected a note id and the new text")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.EditNote(f.Arg(0), strings.Join(f.Args()[1:], " ")); err != nil {
		return errorf("%v", err)
	}
	return subcommands.ExitSuccess
}

// rmNoteCmd holds the flags for the 'rm-note' subcommand.
type rmNoteCmd struct{}

func (*rmNoteCmd) Name() string     { return "rm-note" }
func (*rmNoteCmd) Synopsis() string { return "delete a journal entry" }
func (*rmNoteCmd) Usage() string {
	return `alf rm-note <id>

  Deletes one journal entry.
`
}
func (*rmNoteCmd) SetFlags(*flag.FlagSet) {}

func (c *rmNoteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected a note id")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	if err := state.DeleteNote(f.Arg(0)); err != nil {
		return errorf("%v", err)
	}
	return subcommands.ExitSuccess
}

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct{}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "ask for a root-cause coaching of one entry" }
func (*analyzeCmd) Usage() string {
	return `alf analyze <id>

  Asks the AI coach for the root cause behind the entry and how to
  prevent it, and attaches the answer to the entry.
`
}
func (*analyzeCmd) SetFlags(*flag.FlagSet) {}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected a note id")
	}
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	analysis, err := state.AnalyzeNote(ctx, f.Arg(0))
	if err != nil {
		return errorf("%v", err)
	}
	fmt.Printf("Root cause: %s\nPrevention: %s\n", analysis.RootCause, analysis.Prevention)
	return subcommands.ExitSuccess
}

// reflectCmd holds the flags for the 'reflect' subcommand.
type reflectCmd struct{}

func (*reflectCmd) Name() string     { return "reflect" }
func (*reflectCmd) Synopsis() string { return "summarize the journal into one coaching report" }
func (*reflectCmd) Usage() string {
	return `alf reflect

  Summarizes all journal entries into one coaching report and appends
  it to the journal.
`
}
func (*reflectCmd) SetFlags(*flag.FlagSet) {}

func (c *reflectCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	state, err := openState(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	rec, err := state.Reflect(ctx)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.JournalMarkdown(nil, rec))
	return subcommands.ExitSuccess
}
