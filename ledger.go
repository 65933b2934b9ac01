package brokerage

import (
	"iter"
	"sort"
)

// Ledger is the normalized transaction ledger: one row per source
// transaction, in chronological order. Rows with no date sort as if dated at
// the epoch, ahead of all dated rows; rows with equal dates keep their
// source encounter order (the sort is stable, so output is deterministic).
type Ledger struct {
	rows []Row
}

// Assemble flattens every transaction across every statement through
// Normalize and returns the sorted ledger.
func Assemble(statements []Statement, catalog *Catalog) *Ledger {
	l := &Ledger{}
	for _, stmt := range statements {
		for _, tx := range stmt.Transactions {
			l.rows = append(l.rows, Normalize(tx, catalog))
		}
	}
	l.stableSort()
	return l
}

// AssembleExport is a convenience that builds the catalog from the export's
// security list and assembles its statements.
func AssembleExport(e Export) *Ledger {
	return Assemble(e.Statements, NewCatalog(e.Securities))
}

// stableSort sorts rows by their effective date. Stable, so same-day rows
// keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.rows, func(i, j int) bool {
		return l.rows[i].sortKey().Before(l.rows[j].sortKey())
	})
}

// Len returns the number of rows in the ledger.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns an iterator over the ledger rows in chronological order.
func (l *Ledger) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range l.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// First returns the first row of the ledger, or false when it is empty.
// Output headers are derived from the first row's key set, so writers use
// this to guard the empty-ledger boundary explicitly.
func (l *Ledger) First() (Row, bool) {
	if len(l.rows) == 0 {
		return Row{}, false
	}
	return l.rows[0], true
}
