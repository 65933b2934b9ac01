package brokerage

import "github.com/shopspring/decimal"

// DividendsEarned sums the amounts of dividend rows per ticker. Only rows
// whose tx_type is the dividend distribution code contribute; other income
// subtypes (interest, capital gains) are excluded, and cash-only rows with
// an empty ticker are skipped. Tickers absent from the result earned zero
// dividends.
func DividendsEarned(l *Ledger) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for r := range l.Rows() {
		if r.Ticker == "" || r.TxType != TxDividend {
			continue
		}
		totals[r.Ticker] = totals[r.Ticker].Add(r.Amount)
	}
	return totals
}
