package brokerage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type codes shared between the normalizer and the aggregators.
const (
	TxBuy      = "BUY"
	TxSell     = "SELL"
	TxDividend = "DIV"
)

// Label keys. Stock and income rows describe the security ("sec_name"),
// option and bank rows describe the transaction itself ("name"). The CSV
// header is derived from the first row, so the distinction is observable.
const (
	keySecName = "sec_name"
	keyName    = "name"
)

// Row is the canonical ledger row every transaction variant is projected
// into. A zero Date marks an undated row (the catch-all variant); it sorts
// as if dated at the Unix epoch, ahead of every dated row.
type Row struct {
	Date      time.Time
	TxType    string
	Label     string // security name or transaction label, keyed by labelKey
	labelKey  string // keySecName or keyName
	Amount    decimal.Decimal
	Ticker    string
	Units     decimal.NullDecimal
	UnitPrice decimal.NullDecimal
}

var zero = decimal.Zero

// nd wraps a decimal into a present NullDecimal.
func nd(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// sortKey returns the effective ordering date: undated rows are keyed at the
// epoch so they sort before all dated rows.
func (r Row) sortKey() time.Time {
	if r.Date.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return r.Date
}

// Keys returns the row's column names in output order. The third column is
// the row's own label key, preserving the source heterogeneity.
func (r Row) Keys() []string {
	return []string{"date", "tx_type", r.labelKey, "amount", "ticker", "units", "unit_price"}
}

// Values returns the row's column values, aligned with Keys. Decimals are
// rendered exactly; absent units and prices are empty strings.
func (r Row) Values() []string {
	return []string{
		r.dateString(),
		r.TxType,
		r.Label,
		r.Amount.String(),
		r.Ticker,
		nullDecimalString(r.Units),
		nullDecimalString(r.UnitPrice),
	}
}

func (r Row) dateString() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.UTC().Format(time.RFC3339)
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// MarshalJSON renders the row with its keys in output order, the timestamp
// in ISO-8601 (null when undated), and all decimals as strings to keep them
// exact across the JSON boundary.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	if r.Date.IsZero() {
		w.Append("date", nil)
	} else {
		w.Append("date", r.Date.UTC().Format(time.RFC3339))
	}
	w.Append("tx_type", r.TxType)
	w.Append(r.labelKey, r.Label)
	w.Append("amount", r.Amount.String())
	w.Append("ticker", r.Ticker)
	w.Append("units", nullDecimalString(r.Units))
	w.Append("unit_price", nullDecimalString(r.UnitPrice))
	return w.MarshalJSON()
}
