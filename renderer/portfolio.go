// Package renderer turns application state into markdown reports.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/alphatrack/alpha"
)

// PortfolioMarkdown renders the portfolio overview: aggregate figures and
// one row per position.
func PortfolioMarkdown(l *alpha.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.PlainText(fmt.Sprintf("Total Assets: %s", l.TotalAssets()))
	doc.PlainText(fmt.Sprintf("Cash: %s", l.CashBalance()))
	doc.PlainText(fmt.Sprintf("Unrealized P/L: %s (%s)", l.PL().SignedString(), l.PLPercent().SignedString()))

	positions := l.Positions()
	if len(positions) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	doc.H2("Positions")
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			p.Name,
			string(p.Market),
			p.Quantity.String(),
			p.CostPrice.Amount().StringFixed(2),
			p.CurrentPrice.Amount().StringFixed(2),
			p.MarketValue().String(),
			fmt.Sprintf("%s (%s)", p.PL().SignedString(), p.PLPercent().SignedString()),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Market", "Quantity", "Cost", "Price", "Value", "P/L"},
		Rows:   rows,
	})
	return doc.String()
}

// DistributionMarkdown renders the three portfolio distributions.
func DistributionMarkdown(l *alpha.Ledger, sectors map[string]string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Distribution")
	bucketSection(doc, "By Market", l.DistributionByMarket())
	bucketSection(doc, "By Industry", l.DistributionBySector(sectors))
	bucketSection(doc, "Cash vs Equity", l.DistributionCashEquity())
	return doc.String()
}

func bucketSection(doc *md.Markdown, title string, buckets []alpha.Bucket) {
	doc.H2(title)
	if len(buckets) == 0 {
		doc.PlainText("Nothing to show.")
		return
	}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{b.Label, b.Value.String(), b.Weight.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Bucket", "Value", "Weight"},
		Rows:   rows,
	})
}

// TradesMarkdown renders the trade log, newest last.
func TradesMarkdown(trades []alpha.Trade) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trade Log")
	if len(trades) == 0 {
		doc.PlainText("No trades recorded.")
		return doc.String()
	}
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, []string{
			t.Date.String(),
			t.Name,
			string(t.Side),
			t.Quantity.String(),
			t.Price.Amount().StringFixed(2),
			t.Amount.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Name", "Side", "Quantity", "Price", "Amount"},
		Rows:   rows,
	})
	return doc.String()
}

// HistoryMarkdown renders the total-asset series for one time range.
func HistoryMarkdown(points []alpha.AssetPoint, r alpha.TimeRange) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Asset History (%s)", r))
	if len(points) == 0 {
		doc.PlainText("No history recorded yet.")
		return doc.String()
	}
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		change := ""
		if i > 0 {
			change = alpha.GainPercent(p.Value, points[i-1].Value).SignedString()
		}
		rows = append(rows, []string{p.Date.String(), p.Value.StringFixed(2), change})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Total Assets", "Change"},
		Rows:   rows,
	})
	first, last := points[0].Value, points[len(points)-1].Value
	doc.PlainText(fmt.Sprintf("Period change: %s", alpha.GainPercent(last, first).SignedString()))
	return doc.String()
}
