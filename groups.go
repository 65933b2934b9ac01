package brokerage

import "github.com/shopspring/decimal"

// GroupAttribute selects the position attribute used to partition the
// portfolio.
type GroupAttribute string

const (
	BySector    GroupAttribute = "sector"
	ByIndustry  GroupAttribute = "industry"
	ByQuoteType GroupAttribute = "quote_type" // instrument type
)

// GroupAggregate summarizes one group of positions. DividendYield and Beta
// are market-value-weighted averages, so large holdings dominate the group
// characteristic. Beta is nil when no position in the group carries one.
type GroupAggregate struct {
	MarketValue    decimal.Decimal
	PortfolioShare decimal.Decimal // 0..1, against the whole portfolio
	DividendYield  decimal.Decimal
	Beta           *decimal.Decimal
}

// groupAccum carries the weighted sums while partitioning. Beta and yield
// each keep their own market-value denominator: a position lacking the
// metric drops out of that metric's weighted sum only, not the group.
type groupAccum struct {
	marketValue decimal.Decimal
	betaSum     decimal.Decimal
	betaValue   decimal.Decimal
	yieldSum    decimal.Decimal
	yieldValue  decimal.Decimal
}

// GroupBy partitions positions by the chosen attribute and computes each
// group's total market value, portfolio share and market-value-weighted
// yield and beta. The portfolio total is computed once over the ungrouped
// set, so shares across one grouping sum to 1 whenever the total is
// nonzero.
func GroupBy(attr GroupAttribute, positions []EnrichedPosition) map[string]GroupAggregate {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.MarketValue)
	}

	accums := make(map[string]*groupAccum)
	for _, p := range positions {
		key := groupKey(attr, p)
		acc, ok := accums[key]
		if !ok {
			acc = &groupAccum{}
			accums[key] = acc
		}
		acc.marketValue = acc.marketValue.Add(p.MarketValue)
		if p.Beta != nil {
			acc.betaSum = acc.betaSum.Add(p.MarketValue.Mul(*p.Beta))
			acc.betaValue = acc.betaValue.Add(p.MarketValue)
		}
		if p.DividendYield != nil {
			acc.yieldSum = acc.yieldSum.Add(p.MarketValue.Mul(*p.DividendYield))
			acc.yieldValue = acc.yieldValue.Add(p.MarketValue)
		}
	}

	groups := make(map[string]GroupAggregate, len(accums))
	for key, acc := range accums {
		g := GroupAggregate{MarketValue: acc.marketValue}
		if !total.IsZero() {
			g.PortfolioShare = acc.marketValue.Div(total)
		}
		if !acc.yieldValue.IsZero() {
			g.DividendYield = acc.yieldSum.Div(acc.yieldValue)
		}
		if !acc.betaValue.IsZero() {
			beta := acc.betaSum.Div(acc.betaValue)
			g.Beta = &beta
		}
		groups[key] = g
	}
	return groups
}

func groupKey(attr GroupAttribute, p EnrichedPosition) string {
	var key string
	switch attr {
	case BySector:
		key = p.Sector
	case ByIndustry:
		key = p.Industry
	case ByQuoteType:
		key = p.QuoteType
	}
	if key == "" {
		key = "unknown"
	}
	return key
}
