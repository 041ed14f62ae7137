package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/alphatrack/alpha"
)

// JournalMarkdown renders the trading diary, newest entry first, with the
// latest aggregate reflection on top when one exists.
func JournalMarkdown(notes []*alpha.Note, summary *alpha.SummaryRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trading Journal")
	if summary != nil {
		doc.H2(fmt.Sprintf("Reflection (%s)", summary.GeneratedAt.Format("2006-01-02")))
		doc.PlainText(summary.Content)
		for _, p := range summary.KeyPoints {
			doc.BulletList(p)
		}
	}

	if len(notes) == 0 {
		doc.PlainText("No journal entries. Add one with `alf note <text>`.")
		return doc.String()
	}

	doc.H2("Entries")
	for _, n := range notes {
		doc.PlainText(fmt.Sprintf("%s %s %s (id %s)", noteMark(n), n.CreatedAt.Format("2006-01-02 15:04"), n.Content, n.ID))
		if n.Analysis != nil {
			doc.BulletList(
				"Root cause: "+n.Analysis.RootCause,
				"Prevention: "+n.Analysis.Prevention,
			)
		}
	}
	return doc.String()
}

func noteMark(n *alpha.Note) string {
	switch {
	case n.Kind == alpha.NoteTask && n.Completed:
		return "[x]"
	case n.Kind == alpha.NoteTask:
		return "[ ]"
	case n.Kind == alpha.NoteSummary:
		return "[ai]"
	default:
		return "-"
	}
}
