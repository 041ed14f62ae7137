package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/alphatrack/alpha/research"
)

// MarketMarkdown renders the market sentiment dashboard.
func MarketMarkdown(s research.MarketSentiment, fetchedAt time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market Sentiment")
	doc.PlainText(fmt.Sprintf("Sentiment score: %.0f/10 (%s)", s.SentimentScore, sentimentWord(s.SentimentScore)))
	if !fetchedAt.IsZero() {
		doc.PlainText(fmt.Sprintf("Fetched at %s", fetchedAt.Format("2006-01-02 15:04")))
	}

	if len(s.Indices) > 0 {
		doc.H2("Indices")
		rows := make([][]string, 0, len(s.Indices))
		for _, idx := range s.Indices {
			rows = append(rows, []string{
				idx.Name,
				fmt.Sprintf("%.2f", idx.Value),
				fmt.Sprintf("%+.2f (%+.2f%%)", idx.Change, idx.ChangePercent),
			})
		}
		doc.Table(md.TableSet{Header: []string{"Index", "Value", "Change"}, Rows: rows})
	}

	if len(s.LimitUpStocks) > 0 {
		doc.H2("Limit-Up Movers")
		rows := make([][]string, 0, len(s.LimitUpStocks))
		for _, l := range s.LimitUpStocks {
			rows = append(rows, []string{l.Name, l.Code, l.Time, l.Reason})
		}
		doc.Table(md.TableSet{Header: []string{"Name", "Code", "Time", "Reason"}, Rows: rows})
	}

	for _, opp := range s.Opportunities {
		doc.H2(opp.Title)
		doc.PlainText(opp.Description)
		if len(opp.Stocks) == 0 {
			continue
		}
		rows := make([][]string, 0, len(opp.Stocks))
		for _, st := range opp.Stocks {
			rows = append(rows, []string{st.Name, st.Code, st.Reason})
		}
		doc.Table(md.TableSet{Header: []string{"Name", "Code", "Reason"}, Rows: rows})
	}
	return doc.String()
}

func sentimentWord(score float64) string {
	switch {
	case score >= 7:
		return "greedy"
	case score <= 3:
		return "fearful"
	default:
		return "neutral"
	}
}
