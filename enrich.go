package brokerage

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ttmWindow is the trailing lookback used to estimate dividend cadence.
const ttmWindow = 365 * 24 * time.Hour

// EnrichedPosition is a held position augmented with catalog identity,
// externally sourced metrics and the dividend total from the ledger.
// Metric pointers stay nil when the market-data source did not report them.
type EnrichedPosition struct {
	Position
	Ticker          string
	Name            string
	Sector          string
	Industry        string
	QuoteType       string
	Beta            *decimal.Decimal
	DividendYield   *decimal.Decimal
	DividendsEarned decimal.Decimal
	ExDividendDate  time.Time

	RecommendationKey  string
	RecommendationMean *decimal.Decimal
	TargetMeanPrice    *decimal.Decimal

	// Trailing-twelve-month dividend cadence projection.
	PaymentsTTM            int
	LastPayment            decimal.Decimal
	LastPaymentDate        time.Time
	NextExDividendEstimate time.Time
	DaysToNextExDividend   int
}

// Enricher augments positions with market data. The catalog and dividend
// summary are built before the enricher is constructed and never mutated
// afterwards.
type Enricher struct {
	catalog   *Catalog
	dividends map[string]decimal.Decimal
	market    MarketData
	log       zerolog.Logger

	// now is stubbed in tests to pin the TTM window.
	now func() time.Time
}

// NewEnricher returns an enricher consulting the given market-data boundary.
func NewEnricher(catalog *Catalog, dividends map[string]decimal.Decimal, market MarketData, log zerolog.Logger) *Enricher {
	return &Enricher{
		catalog:   catalog,
		dividends: dividends,
		market:    market,
		log:       log,
		now:       time.Now,
	}
}

// EnrichAll enriches every position in order.
func (e *Enricher) EnrichAll(positions []Position) []EnrichedPosition {
	out := make([]EnrichedPosition, 0, len(positions))
	for _, p := range positions {
		out = append(out, e.Enrich(p))
	}
	return out
}

// Enrich resolves the position's security and merges in fundamentals and the
// dividend cadence projection. A failed lookup is logged and leaves the
// position partially enriched; it never aborts the run, so one bad external
// lookup cannot poison the whole batch.
func (e *Enricher) Enrich(p Position) EnrichedPosition {
	sec := e.catalog.Resolve(p.Identifier)
	out := EnrichedPosition{
		Position:        p,
		Ticker:          sec.Ticker,
		Name:            sec.Name,
		DividendsEarned: e.dividends[sec.Ticker],
	}

	f, err := e.market.Fundamentals(sec.Ticker)
	if err != nil {
		e.log.Warn().Err(err).Str("ticker", sec.Ticker).Msg("fundamentals lookup failed, keeping partial position")
		return out
	}
	out.Sector = fallback(f.Sector, f.Category)
	out.Industry = fallback(f.Industry, f.Category)
	out.QuoteType = f.QuoteType
	out.Beta = f.Beta
	out.DividendYield = f.DividendYield
	out.ExDividendDate = f.ExDividendDate
	out.RecommendationKey = f.RecommendationKey
	out.RecommendationMean = f.RecommendationMean
	out.TargetMeanPrice = f.TargetMeanPrice

	history, err := e.market.DividendHistory(sec.Ticker)
	if err != nil {
		e.log.Warn().Err(err).Str("ticker", sec.Ticker).Msg("dividend history lookup failed, keeping partial position")
		return out
	}
	e.projectCadence(&out, history)
	return out
}

// projectCadence filters the payment history to the trailing year and, when
// at least one payment exists, extrapolates an even cadence: the next
// ex-dividend date is estimated 365/count days after the most recent
// payment.
func (e *Enricher) projectCadence(p *EnrichedPosition, history []DividendPayment) {
	now := e.now()
	cutoff := now.Add(-ttmWindow)

	var count int
	var last DividendPayment
	for _, pay := range history {
		if pay.Date.Before(cutoff) || pay.Date.After(now) {
			continue
		}
		count++
		if pay.Date.After(last.Date) {
			last = pay
		}
	}
	if count == 0 {
		return
	}

	p.PaymentsTTM = count
	p.LastPayment = last.Amount
	p.LastPaymentDate = last.Date
	p.NextExDividendEstimate = last.Date.AddDate(0, 0, 365/count)
	p.DaysToNextExDividend = int(math.Ceil(p.NextExDividendEstimate.Sub(now).Hours() / 24))
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
