package brokerage

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeMarket struct {
	fundamentals func(ticker string) (Fundamentals, error)
	history      func(ticker string) ([]DividendPayment, error)
}

func (f fakeMarket) Fundamentals(ticker string) (Fundamentals, error) {
	if f.fundamentals == nil {
		return Fundamentals{}, nil
	}
	return f.fundamentals(ticker)
}

func (f fakeMarket) DividendHistory(ticker string) ([]DividendPayment, error) {
	if f.history == nil {
		return nil, nil
	}
	return f.history(ticker)
}

func TestEnrich_Full(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	beta := d("1.09")
	yield := d("0.0213")

	market := fakeMarket{
		fundamentals: func(ticker string) (Fundamentals, error) {
			return Fundamentals{
				Sector:        "Technology",
				Industry:      "Consumer Electronics",
				QuoteType:     "EQUITY",
				Beta:          &beta,
				DividendYield: &yield,
			}, nil
		},
		history: func(ticker string) ([]DividendPayment, error) {
			return []DividendPayment{
				{Date: time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC), Amount: d("0.25")},
				{Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Amount: d("0.25")},
				{Date: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), Amount: d("0.26")},
				// outside the trailing year, must not count
				{Date: time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC), Amount: d("0.24")},
			}, nil
		},
	}

	e := NewEnricher(testCatalog(), map[string]decimal.Decimal{"AAPL": d("12.75")}, market, zerolog.Nop())
	e.now = func() time.Time { return now }

	p := e.Enrich(Position{Identifier: "037833100", Units: d("10"), MarketValue: d("2000")})

	if p.Ticker != "AAPL" || p.Name != "APPLE INC" {
		t.Errorf("identity = %q/%q, want AAPL/APPLE INC", p.Ticker, p.Name)
	}
	if p.Sector != "Technology" || p.Industry != "Consumer Electronics" {
		t.Errorf("profile = %q/%q", p.Sector, p.Industry)
	}
	if p.Beta == nil || p.Beta.String() != "1.09" {
		t.Errorf("Beta = %v, want 1.09", p.Beta)
	}
	if p.DividendsEarned.String() != "12.75" {
		t.Errorf("DividendsEarned = %s, want 12.75", p.DividendsEarned)
	}
	if p.PaymentsTTM != 3 {
		t.Errorf("PaymentsTTM = %d, want 3", p.PaymentsTTM)
	}
	if p.LastPayment.String() != "0.26" {
		t.Errorf("LastPayment = %s, want 0.26", p.LastPayment)
	}
	// 365/3 = 121 days after the last payment
	wantNext := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 121)
	if !p.NextExDividendEstimate.Equal(wantNext) {
		t.Errorf("NextExDividendEstimate = %v, want %v", p.NextExDividendEstimate, wantNext)
	}
	if p.DaysToNextExDividend != 40 {
		t.Errorf("DaysToNextExDividend = %d, want 40", p.DaysToNextExDividend)
	}
}

func TestEnrich_CategoryFallback(t *testing.T) {
	market := fakeMarket{
		fundamentals: func(string) (Fundamentals, error) {
			return Fundamentals{Category: "Large Blend", QuoteType: "ETF"}, nil
		},
	}
	e := NewEnricher(testCatalog(), nil, market, zerolog.Nop())

	p := e.Enrich(Position{Identifier: "037833100"})

	if p.Sector != "Large Blend" || p.Industry != "Large Blend" {
		t.Errorf("fund category should back-fill sector and industry, got %q/%q", p.Sector, p.Industry)
	}
}

func TestEnrich_FundamentalsFailureKeepsPartial(t *testing.T) {
	market := fakeMarket{
		fundamentals: func(string) (Fundamentals, error) {
			return Fundamentals{}, errors.New("timeout")
		},
	}
	e := NewEnricher(testCatalog(), map[string]decimal.Decimal{"AAPL": d("5")}, market, zerolog.Nop())

	p := e.Enrich(Position{Identifier: "037833100", MarketValue: d("100")})

	if p.Ticker != "AAPL" {
		t.Errorf("identity must survive a failed lookup, got %q", p.Ticker)
	}
	if p.DividendsEarned.String() != "5" {
		t.Errorf("ledger-derived dividends must survive, got %s", p.DividendsEarned)
	}
	if p.Beta != nil || p.Sector != "" {
		t.Error("failed lookup must not fabricate metrics")
	}
}

func TestEnrich_HistoryFailureKeepsFundamentals(t *testing.T) {
	beta := d("0.9")
	market := fakeMarket{
		fundamentals: func(string) (Fundamentals, error) {
			return Fundamentals{Sector: "Utilities", Beta: &beta}, nil
		},
		history: func(string) ([]DividendPayment, error) {
			return nil, errors.New("timeout")
		},
	}
	e := NewEnricher(testCatalog(), nil, market, zerolog.Nop())

	p := e.Enrich(Position{Identifier: "037833100"})

	if p.Sector != "Utilities" || p.Beta == nil {
		t.Error("fundamentals must survive a failed history lookup")
	}
	if p.PaymentsTTM != 0 || !p.NextExDividendEstimate.IsZero() {
		t.Error("no cadence should be projected without history")
	}
}

func TestEnrich_NilMetricsPreserved(t *testing.T) {
	market := fakeMarket{
		fundamentals: func(string) (Fundamentals, error) {
			return Fundamentals{Sector: "Energy"}, nil
		},
	}
	e := NewEnricher(testCatalog(), nil, market, zerolog.Nop())

	p := e.Enrich(Position{Identifier: "037833100"})

	if p.Beta != nil || p.DividendYield != nil {
		t.Error("unreported metrics must stay nil, not zero")
	}
}

func TestEnrichAll_Order(t *testing.T) {
	e := NewEnricher(testCatalog(), nil, fakeMarket{}, zerolog.Nop())
	out := e.EnrichAll([]Position{
		{Identifier: "594918104"},
		{Identifier: "037833100"},
	})
	if len(out) != 2 || out[0].Ticker != "MSFT" || out[1].Ticker != "AAPL" {
		t.Errorf("EnrichAll must preserve input order, got %v", out)
	}
}
