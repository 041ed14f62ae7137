package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/alphatrack/alpha"
)

// TopicsMarkdown renders the tracked topics, latest first.
func TopicsMarkdown(topics []*alpha.Topic) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tracked Topics")
	if len(topics) == 0 {
		doc.PlainText("No topics tracked. Add one with `alf track <keyword>`.")
		return doc.String()
	}
	for _, t := range topics {
		doc.H2(fmt.Sprintf("%s (%.0f/10)", t.Keyword, t.Score))
		if t.State == alpha.FetchFailed {
			doc.PlainText("Last refresh failed, showing previous report.")
		}
		doc.PlainText(t.Summary)
		if t.Catalyst != "" {
			doc.PlainText("Catalyst: " + t.Catalyst)
		}
		if len(t.RelatedStocks) > 0 {
			doc.PlainText("Related: " + strings.Join(t.RelatedStocks, ", "))
		}
		doc.PlainText("Updated " + t.LastUpdated.Format("2006-01-02 15:04"))
	}
	return doc.String()
}

// FavoritesMarkdown renders the pinned topic snapshots.
func FavoritesMarkdown(favorites []alpha.Favorite) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Favorite Topics")
	if len(favorites) == 0 {
		doc.PlainText("No favorites saved. Pin one with `alf fav <keyword>`.")
		return doc.String()
	}
	for _, f := range favorites {
		doc.H2(f.Keyword)
		doc.PlainText(f.Summary)
		if f.Catalyst != "" {
			doc.PlainText("Catalyst: " + f.Catalyst)
		}
		doc.PlainText(fmt.Sprintf("Saved %s (id %s)", f.SavedAt.Format("2006-01-02"), f.ID))
	}
	return doc.String()
}
