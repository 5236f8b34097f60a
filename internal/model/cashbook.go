package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBookLine is a single movement in the operational cash book.
// Debit is money in, credit is money out. The cash book is recorded
// independently of the journal and reconciled against it.
type CashBookLine struct {
	ID          int64
	Date        time.Time
	ProjectCode string // empty = general, not attributed to a project
	Description string
	Method      string // cash, bank, transfer, cheque
	RefNo       string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Remarks     string
}

// Net returns the signed cash movement of the line (in minus out).
func (l CashBookLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
