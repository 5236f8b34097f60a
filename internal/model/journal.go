package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side tags which column of a double-entry a posted amount lands in.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Valid reports whether s is debit or credit.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// JournalEntry is a single row in the journal (one side of a
// double-entry). Rows sharing a TxID form one balanced transaction.
type JournalEntry struct {
	ID          int64 // row id, assigned by the store
	TxID        int64 // transaction id, shared by all rows of one posting
	Date        time.Time
	AccountCode string
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Reference   string
	ProjectCode string // empty = not attributed to a project
}

// Side returns which column the entry's amount occupies.
func (e JournalEntry) Side() Side {
	if e.Credit.IsPositive() {
		return SideCredit
	}
	return SideDebit
}

// Amount returns the entry's amount regardless of side.
func (e JournalEntry) Amount() decimal.Decimal {
	if e.Side() == SideCredit {
		return e.Credit
	}
	return e.Debit
}
