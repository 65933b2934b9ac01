package brokerage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fundamentals is the per-security metrics bag returned by the market-data
// boundary. Pointer fields are nil when the source did not report the
// metric; they are copied verbatim, never fabricated.
type Fundamentals struct {
	Sector             string
	Category           string // fund category, fallback for sector/industry
	Industry           string
	Beta               *decimal.Decimal
	DividendYield      *decimal.Decimal
	ExDividendDate     time.Time
	QuoteType          string
	ShortName          string
	RecommendationKey  string
	RecommendationMean *decimal.Decimal
	TargetMeanPrice    *decimal.Decimal
	RegularMarketPrice *decimal.Decimal
	Bid                *decimal.Decimal
	Ask                *decimal.Decimal
}

// DividendPayment is one historical dividend payment of a security.
type DividendPayment struct {
	Date   time.Time
	Amount decimal.Decimal
}

// MarketData is the external lookup boundary consulted during enrichment.
// Implementations must tolerate unknown tickers by returning an empty or
// partial result rather than failing; a genuine transport error is returned
// as an error and handled as a partial enrichment by the caller.
type MarketData interface {
	Fundamentals(ticker string) (Fundamentals, error)
	DividendHistory(ticker string) ([]DividendPayment, error)
}
