// Package renderer turns artifacts into markdown reports for terminal
// display. It only formats; every number arrives already computed.
package renderer

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percent formats a fraction (0.0213) as a percentage ("2.13%").
func percent(d decimal.Decimal) string {
	return d.Mul(hundred).Round(2).String() + "%"
}

// optPercent formats an optional fraction, "n/a" when absent.
func optPercent(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return percent(*d)
}

// optDecimal formats an optional decimal rounded to 2 places, "n/a" when
// absent.
func optDecimal(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return d.Round(2).String()
}
