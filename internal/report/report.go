package report

import (
	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// Kind names a report for dispatch from the CLI.
type Kind string

const (
	KindProfitLoss   Kind = "pl"
	KindCashPosition Kind = "cash"
	KindInvoices     Kind = "invoices"
	KindDebtAging    Kind = "debts"
	KindOverview     Kind = "overview"
	KindProjects     Kind = "projects"
)

// Valid reports whether k names a known report.
func (k Kind) Valid() bool {
	switch k {
	case KindProfitLoss, KindCashPosition, KindInvoices,
		KindDebtAging, KindOverview, KindProjects:
		return true
	}
	return false
}

// Thresholds drive the overview alerts.
type Thresholds struct {
	MinCollectionRatio float64 // percent of invoiced value collected
	MaxDebtToAssets    float64
}

// Reporter assembles read-only reports from the store and the
// reconciliation engine. Report structs are plain data; rendering
// lives in Render.
type Reporter struct {
	store      *store.Store
	rec        *reconcile.Engine
	thresholds Thresholds
}

// NewReporter creates a Reporter.
func NewReporter(st *store.Store, rec *reconcile.Engine, thresholds Thresholds) *Reporter {
	return &Reporter{store: st, rec: rec, thresholds: thresholds}
}
