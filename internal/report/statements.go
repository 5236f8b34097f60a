package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// Line is one account row of a profit and loss statement.
type Line struct {
	AccountCode string
	AccountName string
	Amount      decimal.Decimal
}

// ProfitLoss summarizes income against expenses for one project, or
// for the whole company when ProjectCode is empty.
type ProfitLoss struct {
	ProjectCode   string
	AsOf          time.Time
	Revenue       []Line
	Expenses      []Line
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// ProfitLoss folds the journal through asOf into a profit and loss
// statement.
func (r *Reporter) ProfitLoss(ctx context.Context, projectCode string, asOf time.Time) (*ProfitLoss, error) {
	snap, err := r.rec.Recompute(ctx, reconcile.Filter{ProjectCode: projectCode, Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to fold journal: %w", err)
	}

	pl := &ProfitLoss{
		ProjectCode:   projectCode,
		AsOf:          asOf,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, b := range snap.Balances {
		line := Line{AccountCode: b.Account.Code, AccountName: b.Account.Name, Amount: b.Balance}
		switch b.Account.Type {
		case model.AccountTypeIncome:
			pl.Revenue = append(pl.Revenue, line)
			pl.TotalRevenue = pl.TotalRevenue.Add(b.Balance)
		case model.AccountTypeExpense:
			pl.Expenses = append(pl.Expenses, line)
			pl.TotalExpenses = pl.TotalExpenses.Add(b.Balance)
		}
	}
	pl.NetProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl, nil
}

// CashPosition reports the cash book view next to the journal's cash
// view, with the per-project reconciliation checks.
type CashPosition struct {
	ProjectCode string
	AsOf        time.Time
	CashIn      decimal.Decimal
	CashOut     decimal.Decimal
	NetCash     decimal.Decimal
	JournalCash decimal.Decimal
	Checks      []reconcile.CashCheck
}

// CashPosition sums the cash book through asOf and cross-checks it
// against the journal.
func (r *Reporter) CashPosition(ctx context.Context, projectCode string, asOf time.Time) (*CashPosition, error) {
	lines, err := r.store.ListCashLines(ctx, store.CashFilter{ProjectCode: projectCode, Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to load cash book: %w", err)
	}

	pos := &CashPosition{
		ProjectCode: projectCode,
		AsOf:        asOf,
		CashIn:      decimal.Zero,
		CashOut:     decimal.Zero,
		JournalCash: decimal.Zero,
	}
	for _, l := range lines {
		pos.CashIn = pos.CashIn.Add(l.Debit)
		pos.CashOut = pos.CashOut.Add(l.Credit)
	}
	pos.NetCash = pos.CashIn.Sub(pos.CashOut)

	snap, err := r.rec.Recompute(ctx, reconcile.Filter{ProjectCode: projectCode, Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to fold journal: %w", err)
	}
	pos.Checks = snap.CashChecks
	for _, c := range snap.CashChecks {
		pos.JournalCash = pos.JournalCash.Add(c.JournalCash)
	}
	return pos, nil
}

// InvoiceAging is one outstanding invoice with its age at the report
// date.
type InvoiceAging struct {
	Invoice model.Invoice
	AgeDays int
}

// OutstandingInvoices lists draft and issued invoices through asOf.
type OutstandingInvoices struct {
	ProjectCode      string
	AsOf             time.Time
	Rows             []InvoiceAging
	TotalOutstanding decimal.Decimal
}

// OutstandingInvoices collects invoices still awaiting payment.
func (r *Reporter) OutstandingInvoices(ctx context.Context, projectCode string, asOf time.Time) (*OutstandingInvoices, error) {
	invoices, err := r.store.ListInvoices(ctx, store.InvoiceFilter{ProjectCode: projectCode, Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	out := &OutstandingInvoices{
		ProjectCode:      projectCode,
		AsOf:             asOf,
		TotalOutstanding: decimal.Zero,
	}
	for _, inv := range invoices {
		if !inv.Status.Outstanding() {
			continue
		}
		age := 0
		if inv.Date.Before(asOf) {
			age = int(asOf.Sub(inv.Date).Hours() / 24)
		}
		out.Rows = append(out.Rows, InvoiceAging{Invoice: inv, AgeDays: age})
		out.TotalOutstanding = out.TotalOutstanding.Add(inv.Amount)
	}
	return out, nil
}
