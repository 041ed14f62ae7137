package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/alphatrack/alpha"
	"github.com/alphatrack/alpha/research"
)

// WatchlistMarkdown renders the watched stocks, one row each, in category
// order.
func WatchlistMarkdown(entries []*alpha.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Watchlist")
	if len(entries) == 0 {
		doc.PlainText("No stocks watched. Add one with `alf add <name>`.")
		return doc.String()
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		sector := e.Sector()
		if sector == "" {
			sector = "-"
		}
		rows = append(rows, []string{
			e.Name,
			e.Market,
			fmt.Sprintf("%.2f", e.Price),
			fmt.Sprintf("%+.2f%%", e.ChangePercent),
			string(e.Category),
			sector,
			string(e.State),
			e.LastUpdated.Format("2006-01-02 15:04"),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Market", "Price", "Change", "Category", "Industry", "State", "Updated"},
		Rows:   rows,
	})
	return doc.String()
}

// StockMarkdown renders the full research report of one watched stock.
func StockMarkdown(e *alpha.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(e.Name)
	doc.PlainText(fmt.Sprintf("%s | %.2f (%+.2f%%) | %s", e.Market, e.Price, e.ChangePercent, e.Category))

	a := e.Analysis
	if a == nil {
		doc.PlainText("No research report yet. Run `alf refresh " + e.Name + "`.")
		return doc.String()
	}

	doc.H2("Company News")
	doc.PlainText(a.CompanyNews)
	doc.H2("Main Business")
	doc.PlainText(a.MainBusiness)
	if a.NewBusinessProgress != "" {
		doc.H2("New Business Progress")
		doc.PlainText(a.NewBusinessProgress)
	}

	doc.H2("Industry")
	doc.PlainText(fmt.Sprintf("%s (sentiment %.0f/10)", a.Industry.Name, a.Industry.SentimentScore))

	if a.ManagementVoice != "" {
		doc.H2("Management Voice")
		doc.PlainText(a.ManagementVoice)
	}
	if a.LatestReport != "" {
		doc.H2("Latest Report")
		doc.PlainText(a.LatestReport)
	}
	if a.CoreBarrier != "" {
		doc.H2("Core Barrier")
		doc.PlainText(a.CoreBarrier)
	}

	if a.BusinessRatio.Domestic != 0 || a.BusinessRatio.Overseas != 0 {
		doc.H2("Revenue Split")
		doc.PlainText(fmt.Sprintf("Domestic %.0f%% / Overseas %.0f%%", a.BusinessRatio.Domestic, a.BusinessRatio.Overseas))
	}

	trendSection(doc, "Gross Margin Trend", a.GrossMarginTrend, "%")
	trendSection(doc, "Market Share Trend", a.MarketShareTrend, "%")
	trendSection(doc, "Free Cash Flow Trend", a.FreeCashFlowTrend, "")

	doc.H2("Valuation")
	valuationSection(doc, a.Financials)
	return doc.String()
}

func trendSection(doc *md.Markdown, title string, points []research.TrendPoint, unit string) {
	if len(points) == 0 {
		return
	}
	doc.H2(title)
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Year, fmt.Sprintf("%.2f%s", p.Value, unit)})
	}
	doc.Table(md.TableSet{Header: []string{"Year", "Value"}, Rows: rows})
}

func valuationSection(doc *md.Markdown, f *research.Financials) {
	iv, label := alpha.Valuation(f)
	if label == alpha.NoValuation {
		doc.PlainText("Financial figures unavailable, no valuation estimate.")
		return
	}
	doc.Table(md.TableSet{
		Header: []string{"Net Assets", "Net Profit (FY)", "Intrinsic Value", "Market Cap", "Verdict"},
		Rows: [][]string{{
			fmt.Sprintf("%.1fB %s", f.NetAssets, f.Currency),
			fmt.Sprintf("%.1fB %s", f.LastYearNetProfit, f.Currency),
			fmt.Sprintf("%.1fB %s", iv, f.Currency),
			fmt.Sprintf("%.1fB %s", f.MarketCap, f.Currency),
			string(label),
		}},
	})
	if f.FiscalYear != "" {
		doc.PlainText(fmt.Sprintf("Figures from fiscal year %s.", f.FiscalYear))
	}
}
