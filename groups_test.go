package brokerage

import (
	"testing"

	"github.com/shopspring/decimal"
)

func pd(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestGroupBy_SinglePositionPassthrough(t *testing.T) {
	positions := []EnrichedPosition{{
		Position:      Position{MarketValue: d("1000")},
		Sector:        "Technology",
		Beta:          pd("1.2"),
		DividendYield: pd("0.0213"),
	}}

	groups := GroupBy(BySector, positions)

	g, ok := groups["Technology"]
	if !ok {
		t.Fatalf("missing Technology group, got %v", groups)
	}
	if g.MarketValue.String() != "1000" {
		t.Errorf("MarketValue = %s, want 1000", g.MarketValue)
	}
	if g.PortfolioShare.String() != "1" {
		t.Errorf("PortfolioShare = %s, want 1", g.PortfolioShare)
	}
	// a single position passes its metrics through unchanged
	if g.Beta == nil || g.Beta.String() != "1.2" {
		t.Errorf("Beta = %v, want 1.2", g.Beta)
	}
	if g.DividendYield.String() != "0.0213" {
		t.Errorf("DividendYield = %s, want 0.0213", g.DividendYield)
	}
}

func TestGroupBy_SharesSumToOne(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("600")}, Sector: "Technology"},
		{Position: Position{MarketValue: d("300")}, Sector: "Healthcare"},
		{Position: Position{MarketValue: d("100")}, Sector: "Energy"},
	}

	groups := GroupBy(BySector, positions)

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.PortfolioShare)
	}
	if total.String() != "1" {
		t.Errorf("shares sum to %s, want 1", total)
	}
	if groups["Technology"].PortfolioShare.String() != "0.6" {
		t.Errorf("Technology share = %s, want 0.6", groups["Technology"].PortfolioShare)
	}
}

func TestGroupBy_WeightedAverages(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("300")}, Sector: "Technology", Beta: pd("1")},
		{Position: Position{MarketValue: d("100")}, Sector: "Technology", Beta: pd("2")},
	}

	groups := GroupBy(BySector, positions)

	// (300*1 + 100*2) / 400 = 1.25
	if got := groups["Technology"].Beta; got == nil || got.String() != "1.25" {
		t.Errorf("weighted beta = %v, want 1.25", got)
	}
}

func TestGroupBy_NilBetaSkipped(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("900")}, Sector: "Technology"},
		{Position: Position{MarketValue: d("100")}, Sector: "Technology", Beta: pd("1.5")},
	}

	groups := GroupBy(BySector, positions)

	// the betaless position drops out of the weighting, not the group
	if got := groups["Technology"].Beta; got == nil || got.String() != "1.5" {
		t.Errorf("Beta = %v, want 1.5", got)
	}
	if groups["Technology"].MarketValue.String() != "1000" {
		t.Errorf("MarketValue = %s, want 1000", groups["Technology"].MarketValue)
	}
}

func TestGroupBy_NilYieldSkipped(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("500")}, Sector: "Technology", DividendYield: pd("0.04")},
		{Position: Position{MarketValue: d("500")}, Sector: "Technology"},
	}

	groups := GroupBy(BySector, positions)

	if got := groups["Technology"].DividendYield.String(); got != "0.04" {
		t.Errorf("DividendYield = %s, want 0.04", got)
	}
}

func TestGroupBy_AllBetasMissing(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("100")}, Sector: "Technology"},
	}

	groups := GroupBy(BySector, positions)

	if groups["Technology"].Beta != nil {
		t.Errorf("Beta = %v, want nil when no position carries one", groups["Technology"].Beta)
	}
}

func TestGroupBy_MissingAttribute(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("100")}},
	}

	groups := GroupBy(ByIndustry, positions)

	if _, ok := groups["unknown"]; !ok {
		t.Errorf("positions without the attribute should land in unknown, got %v", groups)
	}
}

func TestGroupBy_ZeroTotal(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: decimal.Zero}, Sector: "Technology"},
	}

	groups := GroupBy(BySector, positions)

	if !groups["Technology"].PortfolioShare.IsZero() {
		t.Errorf("share with a zero portfolio total should stay zero, got %s", groups["Technology"].PortfolioShare)
	}
}

func TestGroupBy_ByQuoteType(t *testing.T) {
	positions := []EnrichedPosition{
		{Position: Position{MarketValue: d("100")}, QuoteType: "EQUITY"},
		{Position: Position{MarketValue: d("200")}, QuoteType: "ETF"},
		{Position: Position{MarketValue: d("50")}, QuoteType: "EQUITY"},
	}

	groups := GroupBy(ByQuoteType, positions)

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups["EQUITY"].MarketValue.String() != "150" {
		t.Errorf("EQUITY market value = %s, want 150", groups["EQUITY"].MarketValue)
	}
}
