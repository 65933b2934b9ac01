package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/etnz/brokerage"
)

// PositionsMarkdown renders the enriched positions as a markdown table.
// Metrics an external source did not report show as "n/a" rather than a
// misleading zero.
func PositionsMarkdown(positions []brokerage.EnrichedPosition, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")

	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			p.Ticker,
			p.Name,
			p.Units.String(),
			brokerage.M(p.MarketValue, currency).String(),
			optDecimal(p.Beta),
			optPercent(p.DividendYield),
			brokerage.M(p.DividendsEarned, currency).String(),
			nextExDiv(p),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Name", "Units", "Market Value", "Beta", "Yield", "Dividends", "Next Ex-Div"},
		Rows:   rows,
	})

	return doc.String()
}

func nextExDiv(p brokerage.EnrichedPosition) string {
	if p.NextExDividendEstimate.IsZero() {
		return "n/a"
	}
	return fmt.Sprintf("%s (%dd)", p.NextExDividendEstimate.Format(time.DateOnly), p.DaysToNextExDividend)
}
