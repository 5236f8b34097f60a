package books

import (
	"context"
	"fmt"
	"time"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/report"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// RecomputeBalances folds the journal into a fresh snapshot and runs
// the cash checks. Read-only; mismatches are findings on the snapshot,
// never errors.
func (b *Books) RecomputeBalances(ctx context.Context, f reconcile.Filter) (*reconcile.Snapshot, error) {
	return b.rec.Recompute(ctx, f)
}

// GetReport builds the named report. projectCode narrows the
// project-scoped reports and is ignored by the company-wide ones; a
// zero asOf means today.
func (b *Books) GetReport(ctx context.Context, kind report.Kind, projectCode string, asOf time.Time) (any, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	switch kind {
	case report.KindProfitLoss:
		return b.reporter.ProfitLoss(ctx, projectCode, asOf)
	case report.KindCashPosition:
		return b.reporter.CashPosition(ctx, projectCode, asOf)
	case report.KindInvoices:
		return b.reporter.OutstandingInvoices(ctx, projectCode, asOf)
	case report.KindDebtAging:
		return b.reporter.DebtAging(ctx, asOf)
	case report.KindOverview:
		return b.reporter.Overview(ctx, asOf)
	case report.KindProjects:
		return b.reporter.ProjectSummaries(ctx, asOf, 0)
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}

// Listing pass-throughs for the CLI. Reads are not audited.

func (b *Books) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return b.store.ListAccounts(ctx)
}

func (b *Books) ListProjects(ctx context.Context) ([]model.Project, error) {
	return b.store.ListProjects(ctx)
}

func (b *Books) ListInvoices(ctx context.Context, f store.InvoiceFilter) ([]model.Invoice, error) {
	return b.store.ListInvoices(ctx, f)
}

func (b *Books) ListCashLines(ctx context.Context, f store.CashFilter) ([]model.CashBookLine, error) {
	return b.store.ListCashLines(ctx, f)
}

func (b *Books) ListDebts(ctx context.Context, f store.DebtFilter) ([]model.DebtOrAsset, error) {
	return b.store.ListDebts(ctx, f)
}

func (b *Books) ListEntries(ctx context.Context, f store.EntryFilter) ([]model.JournalEntry, error) {
	return b.store.ListEntries(ctx, f)
}
