// Package qfx reads an OFX/QFX brokerage download and maps it into the
// statement tree. All OFX rational amounts are converted to exact decimals
// here, at the boundary; nothing downstream ever sees a float.
package qfx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/etnz/brokerage"
)

// Parse decodes one OFX/QFX document into an export: the security list,
// the account currency and every investment statement it contains.
func Parse(r io.Reader) (brokerage.Export, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return brokerage.Export{}, fmt.Errorf("cannot parse OFX document: %w", err)
	}

	var export brokerage.Export
	for _, msg := range resp.SecList {
		list, ok := msg.(*ofxgo.SecurityList)
		if !ok {
			continue
		}
		for _, sec := range list.Securities {
			export.Securities = append(export.Securities, securityRecord(sec))
		}
	}
	for _, msg := range resp.InvStmt {
		stmt, ok := msg.(*ofxgo.InvStatementResponse)
		if !ok {
			continue
		}
		if export.Currency == "" {
			export.Currency = stmt.CurDef.String()
		}
		export.Statements = append(export.Statements, statement(stmt))
	}
	return export, nil
}

// securityRecord flattens any security info variant down to the common
// descriptive record; the variants only differ in fields the catalog does
// not use.
func securityRecord(sec ofxgo.Security) brokerage.SecurityRecord {
	var info ofxgo.SecInfo
	switch s := sec.(type) {
	case ofxgo.StockInfo:
		info = s.SecInfo
	case ofxgo.MFInfo:
		info = s.SecInfo
	case ofxgo.OptInfo:
		info = s.SecInfo
	case ofxgo.DebtInfo:
		info = s.SecInfo
	case ofxgo.OtherInfo:
		info = s.SecInfo
	}
	return brokerage.SecurityRecord{
		Ticker:         string(info.Ticker),
		Name:           string(info.SecName),
		Identifier:     string(info.SecID.UniqueID),
		IdentifierType: string(info.SecID.UniqueIDType),
	}
}

func statement(stmt *ofxgo.InvStatementResponse) brokerage.Statement {
	var out brokerage.Statement
	if stmt.InvTranList != nil {
		for _, t := range stmt.InvTranList.InvTransactions {
			out.Transactions = append(out.Transactions, investment(t))
		}
		for _, bt := range stmt.InvTranList.BankTransactions {
			for _, t := range bt.Transactions {
				out.Transactions = append(out.Transactions, brokerage.BankTransaction{
					Posted: t.DtPosted.Time,
					Type:   t.TrnType.String(),
					Name:   string(t.Name),
					Amount: dec(t.TrnAmt),
				})
			}
		}
	}
	for _, p := range stmt.InvPosList {
		out.Positions = append(out.Positions, position(p))
	}
	return out
}

// investment maps one investment transaction to its statement variant.
// Anything outside the handled set degrades to Unrecognized with the OFX
// aggregate name as its tag, so the ledger keeps one row per source record.
func investment(t ofxgo.InvTransaction) brokerage.Transaction {
	switch v := t.(type) {
	case ofxgo.BuyStock:
		return brokerage.TradeBuy{
			TradeDate:  v.InvBuy.InvTran.DtTrade.Time,
			SettleDate: settle(v.InvBuy.InvTran.DtSettle),
			Identifier: string(v.InvBuy.SecID.UniqueID),
			Units:      dec(v.InvBuy.Units),
			UnitPrice:  dec(v.InvBuy.UnitPrice),
			Commission: dec(v.InvBuy.Commission),
			Total:      dec(v.InvBuy.Total),
		}
	case ofxgo.SellStock:
		return brokerage.TradeSell{
			TradeDate:  v.InvSell.InvTran.DtTrade.Time,
			SettleDate: settle(v.InvSell.InvTran.DtSettle),
			Identifier: string(v.InvSell.SecID.UniqueID),
			Units:      dec(v.InvSell.Units),
			UnitPrice:  dec(v.InvSell.UnitPrice),
			Commission: dec(v.InvSell.Commission),
			Total:      dec(v.InvSell.Total),
		}
	case ofxgo.BuyOpt:
		return brokerage.OptionTrade{
			TradeDate:  v.InvBuy.InvTran.DtTrade.Time,
			SettleDate: settle(v.InvBuy.InvTran.DtSettle),
			Identifier: string(v.InvBuy.SecID.UniqueID),
			Action:     v.OptBuyType.String(),
			Units:      dec(v.InvBuy.Units),
			UnitPrice:  dec(v.InvBuy.UnitPrice),
			Commission: dec(v.InvBuy.Commission),
			Fees:       dec(v.InvBuy.Fees),
			Total:      dec(v.InvBuy.Total),
		}
	case ofxgo.SellOpt:
		return brokerage.OptionTrade{
			TradeDate:  v.InvSell.InvTran.DtTrade.Time,
			SettleDate: settle(v.InvSell.InvTran.DtSettle),
			Identifier: string(v.InvSell.SecID.UniqueID),
			Action:     v.OptSellType.String(),
			Units:      dec(v.InvSell.Units),
			UnitPrice:  dec(v.InvSell.UnitPrice),
			Commission: dec(v.InvSell.Commission),
			Fees:       dec(v.InvSell.Fees),
			Total:      dec(v.InvSell.Total),
		}
	case ofxgo.ClosureOpt:
		return brokerage.OptionClosure{
			TradeDate:  v.InvTran.DtTrade.Time,
			Identifier: string(v.SecID.UniqueID),
			Action:     v.OptAction.String(),
			Units:      dec(v.Units),
		}
	case ofxgo.Income:
		return brokerage.Income{
			TradeDate:  v.InvTran.DtTrade.Time,
			Identifier: string(v.SecID.UniqueID),
			Subtype:    v.IncomeType.String(),
			Total:      dec(v.Total),
		}
	default:
		return brokerage.Unrecognized{RawTag: rawTag(t)}
	}
}

func position(p ofxgo.Position) brokerage.Position {
	var inv ofxgo.InvPosition
	switch v := p.(type) {
	case ofxgo.StockPosition:
		inv = v.InvPos
	case ofxgo.MFPosition:
		inv = v.InvPos
	case ofxgo.OptPosition:
		inv = v.InvPos
	case ofxgo.DebtPosition:
		inv = v.InvPos
	case ofxgo.OtherPosition:
		inv = v.InvPos
	}
	return brokerage.Position{
		Identifier:  string(inv.SecID.UniqueID),
		Type:        inv.PosType.String(),
		Units:       dec(inv.Units),
		UnitPrice:   dec(inv.UnitPrice),
		MarketValue: dec(inv.MktVal),
	}
}

// rawTag derives a tag from the concrete OFX aggregate type name, e.g.
// "Transfer" for ofxgo.Transfer.
func rawTag(t ofxgo.InvTransaction) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", t), "ofxgo.")
}

func settle(d *ofxgo.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// dec converts an OFX rational amount to an exact decimal.
func dec(a ofxgo.Amount) decimal.Decimal {
	num := decimal.NewFromBigInt(a.Num(), 0)
	den := decimal.NewFromBigInt(a.Denom(), 0)
	return num.Div(den)
}
