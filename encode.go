package brokerage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// This file contains the output artifact writers. CSV headers follow the
// first-row convention: the header is the first row's key set in that row's
// key order. An empty set therefore produces an empty file, not a panic;
// this boundary is guarded explicitly in every writer.

// WriteLedgerCSV writes the ledger as CSV.
func WriteLedgerCSV(w io.Writer, l *Ledger) error {
	first, ok := l.First()
	if !ok {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(first.Keys()); err != nil {
		return fmt.Errorf("cannot write ledger header: %w", err)
	}
	for r := range l.Rows() {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("cannot write ledger row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLedgerJSON writes the ledger as a JSON array. Timestamps are
// ISO-8601 (null for undated rows) and decimals are strings, so no value
// loses precision to binary floats on the way out.
func WriteLedgerJSON(w io.Writer, l *Ledger) error {
	rows := make([]Row, 0, l.Len())
	for r := range l.Rows() {
		rows = append(rows, r)
	}
	return writeJSON(w, rows)
}

// positionKeys is the fixed column list of the positions artifact.
var positionKeys = []string{
	"identifier", "ticker", "name", "type",
	"units", "unit_price", "market_value",
	"sector", "industry", "quote_type",
	"beta", "dividend_yield", "dividends_earned",
	"ex_dividend_date", "payments_ttm", "last_payment", "last_payment_date",
	"next_ex_dividend_estimate", "days_to_next_ex_dividend",
	"recommendation_key", "recommendation_mean", "target_mean_price",
}

func positionValues(p EnrichedPosition) []string {
	return []string{
		p.Identifier, p.Ticker, p.Name, p.Type,
		p.Units.String(), p.UnitPrice.String(), p.MarketValue.String(),
		p.Sector, p.Industry, p.QuoteType,
		ptrString(p.Beta), ptrString(p.DividendYield), p.DividendsEarned.String(),
		timeString(p.ExDividendDate), intString(p.PaymentsTTM), p.LastPayment.String(), timeString(p.LastPaymentDate),
		timeString(p.NextExDividendEstimate), daysString(p),
		p.RecommendationKey, ptrString(p.RecommendationMean), ptrString(p.TargetMeanPrice),
	}
}

// WritePositionsCSV writes enriched positions as CSV.
func WritePositionsCSV(w io.Writer, positions []EnrichedPosition) error {
	if len(positions) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(positionKeys); err != nil {
		return fmt.Errorf("cannot write positions header: %w", err)
	}
	for _, p := range positions {
		if err := cw.Write(positionValues(p)); err != nil {
			return fmt.Errorf("cannot write position row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalJSON renders the enriched position with stable key order, decimal
// strings and ISO-8601 dates (null when absent).
func (p EnrichedPosition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("identifier", p.Identifier)
	w.Append("ticker", p.Ticker)
	w.Append("name", p.Name)
	w.Append("type", p.Type)
	w.Append("units", p.Units.String())
	w.Append("unit_price", p.UnitPrice.String())
	w.Append("market_value", p.MarketValue.String())
	w.Append("sector", p.Sector)
	w.Append("industry", p.Industry)
	w.Append("quote_type", p.QuoteType)
	w.Append("beta", ptrJSON(p.Beta))
	w.Append("dividend_yield", ptrJSON(p.DividendYield))
	w.Append("dividends_earned", p.DividendsEarned.String())
	w.Append("ex_dividend_date", timeJSON(p.ExDividendDate))
	w.Append("payments_ttm", p.PaymentsTTM)
	w.Append("last_payment", p.LastPayment.String())
	w.Append("last_payment_date", timeJSON(p.LastPaymentDate))
	w.Append("next_ex_dividend_estimate", timeJSON(p.NextExDividendEstimate))
	w.Append("days_to_next_ex_dividend", p.DaysToNextExDividend)
	w.Append("recommendation_key", p.RecommendationKey)
	w.Append("recommendation_mean", ptrJSON(p.RecommendationMean))
	w.Append("target_mean_price", ptrJSON(p.TargetMeanPrice))
	return w.MarshalJSON()
}

// WritePositionsJSON writes enriched positions as a JSON array.
func WritePositionsJSON(w io.Writer, positions []EnrichedPosition) error {
	if positions == nil {
		positions = []EnrichedPosition{}
	}
	return writeJSON(w, positions)
}

// WriteGroupsCSV writes one grouping result as CSV. The first column is
// named after the grouping attribute; groups come out sorted by key so the
// artifact is deterministic.
func WriteGroupsCSV(w io.Writer, attr GroupAttribute, groups map[string]GroupAggregate) error {
	if len(groups) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	header := []string{string(attr), "market_value", "portfolio_share", "dividend_yield", "beta"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write groups header: %w", err)
	}
	for _, key := range sortedKeys(groups) {
		g := groups[key]
		row := []string{key, g.MarketValue.String(), g.PortfolioShare.String(), g.DividendYield.String(), ptrString(g.Beta)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write group row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGroupsJSON writes one grouping result as a JSON object keyed by
// group, with keys in sorted order.
func WriteGroupsJSON(w io.Writer, groups map[string]GroupAggregate) error {
	var obj jsonObjectWriter
	for _, key := range sortedKeys(groups) {
		g := groups[key]
		var entry jsonObjectWriter
		entry.Append("market_value", g.MarketValue.String())
		entry.Append("portfolio_share", g.PortfolioShare.String())
		entry.Append("dividend_yield", g.DividendYield.String())
		entry.Append("beta", ptrJSON(g.Beta))
		obj.Append(key, &entry)
	}
	return writeJSON(w, &obj)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal artifact: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func sortedKeys(groups map[string]GroupAggregate) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ptrString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// ptrJSON renders an optional decimal as a string or null.
func ptrJSON(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// timeJSON renders an optional timestamp as ISO-8601 or null.
func timeJSON(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func intString(i int) string { return fmt.Sprintf("%d", i) }

func daysString(p EnrichedPosition) string {
	if p.NextExDividendEstimate.IsZero() {
		return ""
	}
	return intString(p.DaysToNextExDividend)
}
