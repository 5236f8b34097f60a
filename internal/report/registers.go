package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// AgingBucket groups debts by days outstanding.
type AgingBucket string

const (
	Bucket0to30  AgingBucket = "0-30"
	Bucket31to60 AgingBucket = "31-60"
	Bucket61to90 AgingBucket = "61-90"
	BucketOver90 AgingBucket = "90+"
)

// AgingBuckets is the render order of the buckets.
var AgingBuckets = []AgingBucket{Bucket0to30, Bucket31to60, Bucket61to90, BucketOver90}

func bucketFor(ageDays int) AgingBucket {
	switch {
	case ageDays <= 30:
		return Bucket0to30
	case ageDays <= 60:
		return Bucket31to60
	case ageDays <= 90:
		return Bucket61to90
	}
	return BucketOver90
}

// DebtAgingRow is one debt with its age at the report date.
type DebtAgingRow struct {
	Record  model.DebtOrAsset
	AgeDays int
	Bucket  AgingBucket
}

// DebtAging groups outstanding debts into age buckets.
type DebtAging struct {
	AsOf         time.Time
	Rows         []DebtAgingRow
	BucketTotals map[AgingBucket]decimal.Decimal
	TotalDebt    decimal.Decimal
}

// DebtAging buckets registered debts by age. Fixed assets are not
// aged; they only feed the overview ratios.
func (r *Reporter) DebtAging(ctx context.Context, asOf time.Time) (*DebtAging, error) {
	debts, err := r.store.ListDebts(ctx, store.DebtFilter{Kind: model.KindDebt})
	if err != nil {
		return nil, fmt.Errorf("failed to load debts register: %w", err)
	}

	aging := &DebtAging{
		AsOf:         asOf,
		BucketTotals: make(map[AgingBucket]decimal.Decimal, len(AgingBuckets)),
		TotalDebt:    decimal.Zero,
	}
	for _, b := range AgingBuckets {
		aging.BucketTotals[b] = decimal.Zero
	}
	for _, d := range debts {
		if !d.StartDate.IsZero() && d.StartDate.After(asOf) {
			continue
		}
		age := d.AgeDays(asOf)
		bucket := bucketFor(age)
		aging.Rows = append(aging.Rows, DebtAgingRow{Record: d, AgeDays: age, Bucket: bucket})
		aging.BucketTotals[bucket] = aging.BucketTotals[bucket].Add(d.Amount)
		aging.TotalDebt = aging.TotalDebt.Add(d.Amount)
	}
	return aging, nil
}

// CompanyOverview is the company-wide dashboard: headline totals with
// the derived health ratios and alerts.
type CompanyOverview struct {
	AsOf             time.Time
	TotalInvoiced    decimal.Decimal
	TotalCollected   decimal.Decimal
	NetCash          decimal.Decimal
	TotalDebts       decimal.Decimal
	TotalFixedAssets decimal.Decimal
	Alerts           []string
}

// CollectionRatio returns collected over invoiced as a percentage.
// ok is false when nothing has been invoiced.
func (o *CompanyOverview) CollectionRatio() (float64, bool) {
	if !o.TotalInvoiced.IsPositive() {
		return 0, false
	}
	return o.TotalCollected.Div(o.TotalInvoiced).InexactFloat64() * 100, true
}

// DebtToAssets returns total debts over total fixed assets. ok is
// false when no fixed assets are registered.
func (o *CompanyOverview) DebtToAssets() (float64, bool) {
	if !o.TotalFixedAssets.IsPositive() {
		return 0, false
	}
	return o.TotalDebts.Div(o.TotalFixedAssets).InexactFloat64(), true
}

// CashCoverage returns net cash over total debts. ok is false when no
// debts are registered.
func (o *CompanyOverview) CashCoverage() (float64, bool) {
	if !o.TotalDebts.IsPositive() {
		return 0, false
	}
	return o.NetCash.Div(o.TotalDebts).InexactFloat64(), true
}

// Overview assembles the company dashboard through asOf.
func (r *Reporter) Overview(ctx context.Context, asOf time.Time) (*CompanyOverview, error) {
	o := &CompanyOverview{
		AsOf:             asOf,
		TotalInvoiced:    decimal.Zero,
		TotalCollected:   decimal.Zero,
		NetCash:          decimal.Zero,
		TotalDebts:       decimal.Zero,
		TotalFixedAssets: decimal.Zero,
	}

	invoices, err := r.store.ListInvoices(ctx, store.InvoiceFilter{Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	for _, inv := range invoices {
		if inv.Status == model.InvoiceCancelled {
			continue
		}
		o.TotalInvoiced = o.TotalInvoiced.Add(inv.Amount)
		if inv.Status == model.InvoicePaid {
			o.TotalCollected = o.TotalCollected.Add(inv.Amount)
		}
	}

	lines, err := r.store.ListCashLines(ctx, store.CashFilter{Through: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to load cash book: %w", err)
	}
	for _, l := range lines {
		o.NetCash = o.NetCash.Add(l.Net())
	}

	debts, err := r.store.ListDebts(ctx, store.DebtFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load debts register: %w", err)
	}
	for _, d := range debts {
		if !d.StartDate.IsZero() && d.StartDate.After(asOf) {
			continue
		}
		switch d.Kind {
		case model.KindDebt:
			o.TotalDebts = o.TotalDebts.Add(d.Amount)
		case model.KindFixedAsset:
			o.TotalFixedAssets = o.TotalFixedAssets.Add(d.Amount)
		}
	}

	o.Alerts = r.alerts(o)
	return o, nil
}

func (r *Reporter) alerts(o *CompanyOverview) []string {
	var alerts []string
	if o.NetCash.IsNegative() {
		alerts = append(alerts, "net cash is negative")
	}
	if ratio, ok := o.CollectionRatio(); ok && ratio < r.thresholds.MinCollectionRatio {
		alerts = append(alerts, fmt.Sprintf("collection ratio %.1f%% below target %.1f%%",
			ratio, r.thresholds.MinCollectionRatio))
	}
	if ratio, ok := o.DebtToAssets(); ok && r.thresholds.MaxDebtToAssets > 0 && ratio > r.thresholds.MaxDebtToAssets {
		alerts = append(alerts, fmt.Sprintf("debt to assets %.2f above limit %.2f",
			ratio, r.thresholds.MaxDebtToAssets))
	}
	if coverage, ok := o.CashCoverage(); ok && coverage < 1 {
		alerts = append(alerts, fmt.Sprintf("net cash covers only %.2f of outstanding debts", coverage))
	}
	return alerts
}

// ProjectSummary is one project's headline numbers.
type ProjectSummary struct {
	Project   model.Project
	Revenue   decimal.Decimal
	CashIn    decimal.Decimal
	CashOut   decimal.Decimal
	NetCash   decimal.Decimal
	EstProfit decimal.Decimal // revenue minus cash out
}

// Margin returns estimated profit over revenue as a percentage. ok is
// false when the project has no revenue yet.
func (s ProjectSummary) Margin() (float64, bool) {
	if !s.Revenue.IsPositive() {
		return 0, false
	}
	return s.EstProfit.Div(s.Revenue).InexactFloat64() * 100, true
}

// ProjectSummaries ranks projects by estimated profit.
type ProjectSummaries struct {
	AsOf time.Time
	TopN int // 0 = all projects
	Rows []ProjectSummary
}

// ProjectSummaries folds every project's journal revenue and cash book
// movement through asOf, most profitable first. topN of 0 keeps all.
func (r *Reporter) ProjectSummaries(ctx context.Context, asOf time.Time, topN int) (*ProjectSummaries, error) {
	projects, err := r.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	out := &ProjectSummaries{AsOf: asOf, TopN: topN}
	for _, p := range projects {
		snap, err := r.rec.Recompute(ctx, reconcile.Filter{ProjectCode: p.Code, Through: asOf})
		if err != nil {
			return nil, fmt.Errorf("failed to fold project %s: %w", p.Code, err)
		}
		row := ProjectSummary{
			Project:   p,
			Revenue:   decimal.Zero,
			CashIn:    decimal.Zero,
			CashOut:   decimal.Zero,
			NetCash:   decimal.Zero,
			EstProfit: decimal.Zero,
		}
		for _, b := range snap.Balances {
			if b.Account.Type == model.AccountTypeIncome {
				row.Revenue = row.Revenue.Add(b.Balance)
			}
		}

		lines, err := r.store.ListCashLines(ctx, store.CashFilter{ProjectCode: p.Code, Through: asOf})
		if err != nil {
			return nil, fmt.Errorf("failed to load cash book for %s: %w", p.Code, err)
		}
		for _, l := range lines {
			row.CashIn = row.CashIn.Add(l.Debit)
			row.CashOut = row.CashOut.Add(l.Credit)
		}
		row.NetCash = row.CashIn.Sub(row.CashOut)
		row.EstProfit = row.Revenue.Sub(row.CashOut)
		out.Rows = append(out.Rows, row)
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		cmp := out.Rows[i].EstProfit.Cmp(out.Rows[j].EstProfit)
		if cmp != 0 {
			return cmp > 0
		}
		return out.Rows[i].Project.Code < out.Rows[j].Project.Code
	})
	if topN > 0 && len(out.Rows) > topN {
		out.Rows = out.Rows[:topN]
	}
	return out, nil
}
