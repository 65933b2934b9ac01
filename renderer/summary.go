package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/etnz/brokerage"
)

// SummaryMarkdown renders the per-ticker balance summary as a markdown
// table, one row per ticker in the order given (already sorted by ticker).
func SummaryMarkdown(summaries []brokerage.TickerSummary, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ticker Summary")

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Ticker,
			brokerage.M(s.Balance, currency).String(),
			s.Units.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Balance", "Units"},
		Rows:   rows,
	})

	return doc.String()
}
