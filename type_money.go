package brokerage

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display-only monetary value: an exact decimal paired with the
// account currency. Arithmetic stays on decimal.Decimal; Money exists so the
// renderers format balances with the right symbol and grouping.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M pairs an exact decimal with a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns a never-nil currency, defaulting through the go-money
// constructor.
func (m Money) currency() *money.Currency {
	return money.New(0, m.cur).Currency()
}

// String formats the value with the currency's symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Decimal returns the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// IsNegative reports whether the value is below zero.
func (m Money) IsNegative() bool { return m.value.IsNegative() }
