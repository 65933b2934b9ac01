package renderer

import (
	"bytes"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/etnz/brokerage"
)

// GroupsMarkdown renders one grouping result as a markdown table, groups
// sorted by key. Market values are formatted in the account currency;
// share and yield as percentages.
func GroupsMarkdown(attr brokerage.GroupAttribute, groups map[string]brokerage.GroupAggregate, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio by " + attrLabel(attr))

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, []string{
			k,
			brokerage.M(g.MarketValue, currency).String(),
			percent(g.PortfolioShare),
			percent(g.DividendYield),
			optDecimal(g.Beta),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{attrLabel(attr), "Market Value", "Share", "Dividend Yield", "Beta"},
		Rows:   rows,
	})

	return doc.String()
}

func attrLabel(attr brokerage.GroupAttribute) string {
	switch attr {
	case brokerage.BySector:
		return "Sector"
	case brokerage.ByIndustry:
		return "Industry"
	case brokerage.ByQuoteType:
		return "Type"
	}
	return string(attr)
}
