package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind distinguishes the two record kinds in the debts register.
type DebtKind string

const (
	KindDebt       DebtKind = "debt"
	KindFixedAsset DebtKind = "fixed-asset"
)

// Valid reports whether k is a known kind.
func (k DebtKind) Valid() bool {
	return k == KindDebt || k == KindFixedAsset
}

// DebtOrAsset is an obligation or a fixed asset tracked outside the
// journal, optionally attributed to a project.
type DebtOrAsset struct {
	ID          int64
	Kind        DebtKind
	Name        string
	ProjectCode string
	Amount      decimal.Decimal
	StartDate   time.Time
	Remarks     string
}

// AgeDays returns the whole days elapsed between the record's start
// date and asOf. Records starting after asOf age as zero.
func (d DebtOrAsset) AgeDays(asOf time.Time) int {
	if d.StartDate.IsZero() || d.StartDate.After(asOf) {
		return 0
	}
	return int(asOf.Sub(d.StartDate).Hours() / 24)
}
