package brokerage

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TickerSummary is the running balance of one ticker across the whole
// ledger: the sum of every row amount, plus the unit balance accumulated
// over BUY and SELL rows.
type TickerSummary struct {
	Ticker  string
	Balance decimal.Decimal
	Units   decimal.Decimal
}

// Summarize folds the ledger into per-ticker balances, sorted by ticker.
// Cash-only rows (empty ticker) are skipped.
func Summarize(l *Ledger) []TickerSummary {
	byTicker := make(map[string]*TickerSummary)
	for r := range l.Rows() {
		if r.Ticker == "" {
			continue
		}
		s, ok := byTicker[r.Ticker]
		if !ok {
			s = &TickerSummary{Ticker: r.Ticker}
			byTicker[r.Ticker] = s
		}
		s.Balance = s.Balance.Add(r.Amount)
		if (r.TxType == TxBuy || r.TxType == TxSell) && r.Units.Valid {
			s.Units = s.Units.Add(r.Units.Decimal)
		}
	}

	out := make([]TickerSummary, 0, len(byTicker))
	for _, s := range byTicker {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// MarkToMarket adds the live value of still-held units to each summary
// balance. Only tickers with a positive unit balance are priced; the price
// is the regular market price, falling back to the bid/ask midpoint rounded
// to 3 places. A failed or empty lookup is logged and leaves that summary's
// balance as-is.
func MarkToMarket(summaries []TickerSummary, market MarketData, log zerolog.Logger) []TickerSummary {
	out := make([]TickerSummary, len(summaries))
	for i, s := range summaries {
		out[i] = s
		if !s.Units.IsPositive() {
			continue
		}
		f, err := market.Fundamentals(s.Ticker)
		if err != nil {
			log.Warn().Err(err).Str("ticker", s.Ticker).Msg("price lookup failed, balance left unmarked")
			continue
		}
		price, ok := livePrice(f)
		if !ok {
			log.Warn().Str("ticker", s.Ticker).Msg("no price available, balance left unmarked")
			continue
		}
		out[i].Balance = s.Balance.Add(s.Units.Mul(price))
	}
	return out
}

func livePrice(f Fundamentals) (decimal.Decimal, bool) {
	if f.RegularMarketPrice != nil {
		return *f.RegularMarketPrice, true
	}
	if f.Bid != nil && f.Ask != nil {
		mid := f.Bid.Add(*f.Ask).Div(decimal.NewFromInt(2)).Round(3)
		return mid, true
	}
	return decimal.Zero, false
}
