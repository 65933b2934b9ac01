package brokerage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the common interface for every record variant found in a
// brokerage statement. The set of variants is closed: Normalize dispatches
// over the concrete types below, and anything the parser could not classify
// arrives as Unrecognized so that the ledger still gets one row per source
// record.
type Transaction interface {
	// Tag returns the variant tag of the record, e.g. "BUYSTOCK". For
	// Unrecognized records it is the raw tag reported by the parser.
	Tag() string
}

// TradeBuy is an equity purchase.
type TradeBuy struct {
	TradeDate  time.Time
	SettleDate time.Time
	Identifier string // catalog key (CUSIP or equivalent)
	Units      decimal.Decimal
	UnitPrice  decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

// TradeSell is an equity sale. Units are negative per source convention.
type TradeSell struct {
	TradeDate  time.Time
	SettleDate time.Time
	Identifier string
	Units      decimal.Decimal
	UnitPrice  decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

// OptionTrade is an option contract bought or sold to open or close.
// Action carries the source action code (BUYTOOPEN, SELLTOCLOSE, ...).
type OptionTrade struct {
	TradeDate  time.Time
	SettleDate time.Time
	Identifier string // option contract identifier, e.g. NOW250321C01040000
	Action     string
	Units      decimal.Decimal
	UnitPrice  decimal.Decimal
	Commission decimal.Decimal
	Fees       decimal.Decimal
	Total      decimal.Decimal
}

// OptionClosure is an option position closed without a trade: expiration,
// assignment or exercise. It moves units but no cash.
type OptionClosure struct {
	TradeDate  time.Time
	Identifier string
	Action     string // EXPIRE, ASSIGN, EXERCISE
	Units      decimal.Decimal
}

// Income is a cash distribution attached to a security: dividend, interest,
// capital gain. Subtype carries the source income code ("DIV", "INTEREST", ...).
type Income struct {
	TradeDate  time.Time
	Identifier string
	Subtype    string
	Total      decimal.Decimal
}

// BankTransaction is a cash movement on the account not attached to any
// security (deposits, fees, lending rebates).
type BankTransaction struct {
	Posted time.Time
	Type   string // source transaction type code (CREDIT, DEBIT, ...)
	Name   string
	Amount decimal.Decimal
}

// Unrecognized is the catch-all for record variants outside the closed set.
// It keeps the raw tag so the ledger row still says what the source sent.
type Unrecognized struct {
	RawTag string
}

func (TradeBuy) Tag() string        { return "BUYSTOCK" }
func (TradeSell) Tag() string       { return "SELLSTOCK" }
func (OptionTrade) Tag() string     { return "OPTTRADE" }
func (OptionClosure) Tag() string   { return "CLOSUREOPT" }
func (Income) Tag() string          { return "INCOME" }
func (BankTransaction) Tag() string { return "BANKTRAN" }
func (u Unrecognized) Tag() string  { return u.RawTag }

// Position is one holding reported by a statement.
type Position struct {
	Identifier  string
	Type        string // LONG, SHORT
	Units       decimal.Decimal
	UnitPrice   decimal.Decimal
	MarketValue decimal.Decimal
}

// Statement is one account statement: its transaction list and the positions
// held at statement date.
type Statement struct {
	Transactions []Transaction
	Positions    []Position
}

// Export is the full statement tree handed over by the interchange-format
// parser: the security catalog source list plus one or more statements.
type Export struct {
	Currency   string // reporting currency of the account, e.g. "USD"
	Securities []SecurityRecord
	Statements []Statement
}
