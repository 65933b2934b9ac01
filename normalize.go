package brokerage

import "regexp"

// Option contract identifiers encode the underlying equity ticker as a
// leading alphabetic run followed by expiry and strike digits. Deriving the
// ticker from the identifier avoids a second catalog for option contracts.
var optionUnderlier = regexp.MustCompile(`^[A-Za-z]+`)

// OptionTicker derives the underlying ticker from an option contract
// identifier, or "???" when the identifier does not start with letters.
func OptionTicker(identifier string) string {
	if m := optionUnderlier.FindString(identifier); m != "" {
		return m
	}
	return "???"
}

// Normalize projects one raw transaction into the canonical row shape.
// It is total: every variant, including Unrecognized, yields a row, and a
// catalog miss degrades to the unknown sentinel instead of failing.
//
// Sign convention: a buy's amount is -(units*unitPrice), a cash outflow.
// A sell reports negative units, so the same product negated yields a
// positive inflow.
func Normalize(tx Transaction, catalog *Catalog) Row {
	switch v := tx.(type) {
	case TradeBuy:
		sec := catalog.Resolve(v.Identifier)
		return Row{
			Date:      v.TradeDate,
			TxType:    TxBuy,
			Label:     sec.Name,
			labelKey:  keySecName,
			Amount:    v.Units.Mul(v.UnitPrice).Neg(),
			Ticker:    sec.Ticker,
			Units:     nd(v.Units),
			UnitPrice: nd(v.UnitPrice),
		}
	case TradeSell:
		sec := catalog.Resolve(v.Identifier)
		return Row{
			Date:      v.TradeDate,
			TxType:    TxSell,
			Label:     sec.Name,
			labelKey:  keySecName,
			Amount:    v.Units.Mul(v.UnitPrice).Neg(),
			Ticker:    sec.Ticker,
			Units:     nd(v.Units),
			UnitPrice: nd(v.UnitPrice),
		}
	case OptionTrade:
		return Row{
			Date:      v.TradeDate,
			TxType:    v.Action,
			Label:     v.Identifier,
			labelKey:  keyName,
			Amount:    v.Total,
			Ticker:    OptionTicker(v.Identifier),
			Units:     nd(v.Units),
			UnitPrice: nd(v.UnitPrice),
		}
	case OptionClosure:
		// Expirations and assignments move units but no cash.
		return Row{
			Date:      v.TradeDate,
			TxType:    v.Action,
			Label:     v.Identifier,
			labelKey:  keyName,
			Ticker:    OptionTicker(v.Identifier),
			Units:     nd(v.Units),
			UnitPrice: nd(zero),
		}
	case Income:
		sec := catalog.Resolve(v.Identifier)
		return Row{
			Date:     v.TradeDate,
			TxType:   v.Subtype,
			Label:    sec.Name,
			labelKey: keySecName,
			Amount:   v.Total,
			Ticker:   sec.Ticker,
		}
	case BankTransaction:
		return Row{
			Date:     v.Posted,
			TxType:   v.Type,
			Label:    v.Name,
			labelKey: keyName,
			Amount:   v.Amount,
		}
	default:
		// One row per source transaction, even for variants outside the
		// closed set: no silent drops.
		return Row{
			TxType:    tx.Tag(),
			Label:     "???",
			labelKey:  keyName,
			Units:     nd(zero),
			UnitPrice: nd(zero),
		}
	}
}
