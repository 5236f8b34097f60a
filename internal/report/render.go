package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
)

// Render writes a plain-text rendering of any report produced by
// Reporter, or of a reconciliation snapshot. currency is the ISO 4217
// code amounts display in.
func Render(w io.Writer, v any, currency string) error {
	var b strings.Builder
	switch rep := v.(type) {
	case *ProfitLoss:
		renderProfitLoss(&b, rep, currency)
	case *CashPosition:
		renderCashPosition(&b, rep, currency)
	case *OutstandingInvoices:
		renderInvoices(&b, rep, currency)
	case *DebtAging:
		renderDebtAging(&b, rep, currency)
	case *CompanyOverview:
		renderOverview(&b, rep, currency)
	case *ProjectSummaries:
		renderProjects(&b, rep, currency)
	case *reconcile.Snapshot:
		renderSnapshot(&b, rep, currency)
	default:
		return fmt.Errorf("unknown report type %T", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatMoney renders d in the currency's display convention, e.g.
// "$1,234.56" for USD.
func formatMoney(d decimal.Decimal, currency string) string {
	cur := money.New(0, currency).Currency()
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).IntPart())
}

func formatPercent(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}

func formatRatio(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func orAll(projectCode string) string {
	if projectCode == "" {
		return "(all projects)"
	}
	return projectCode
}

func orGeneral(projectCode string) string {
	if projectCode == "" {
		return "(general)"
	}
	return projectCode
}

func renderProfitLoss(b *strings.Builder, pl *ProfitLoss, currency string) {
	fmt.Fprintf(b, "PROFIT & LOSS\n")
	fmt.Fprintf(b, "Project:  %s\n", orAll(pl.ProjectCode))
	fmt.Fprintf(b, "As of:    %s\n\n", pl.AsOf.Format(model.DateLayout))

	fmt.Fprintf(b, "Revenue\n")
	for _, line := range pl.Revenue {
		fmt.Fprintf(b, "  %-6s%-28s%14s\n", line.AccountCode, line.AccountName, formatMoney(line.Amount, currency))
	}
	fmt.Fprintf(b, "%-36s%14s\n\n", "Total revenue", formatMoney(pl.TotalRevenue, currency))

	fmt.Fprintf(b, "Expenses\n")
	for _, line := range pl.Expenses {
		fmt.Fprintf(b, "  %-6s%-28s%14s\n", line.AccountCode, line.AccountName, formatMoney(line.Amount, currency))
	}
	fmt.Fprintf(b, "%-36s%14s\n\n", "Total expenses", formatMoney(pl.TotalExpenses, currency))

	fmt.Fprintf(b, "%-36s%14s\n", "Net profit", formatMoney(pl.NetProfit, currency))
}

func renderCashPosition(b *strings.Builder, pos *CashPosition, currency string) {
	fmt.Fprintf(b, "CASH POSITION\n")
	fmt.Fprintf(b, "Project:  %s\n", orAll(pos.ProjectCode))
	fmt.Fprintf(b, "As of:    %s\n\n", pos.AsOf.Format(model.DateLayout))

	fmt.Fprintf(b, "%-36s%14s\n", "Cash in", formatMoney(pos.CashIn, currency))
	fmt.Fprintf(b, "%-36s%14s\n", "Cash out", formatMoney(pos.CashOut, currency))
	fmt.Fprintf(b, "%-36s%14s\n", "Net cash", formatMoney(pos.NetCash, currency))
	fmt.Fprintf(b, "%-36s%14s\n", "Journal cash", formatMoney(pos.JournalCash, currency))

	if len(pos.Checks) == 0 {
		return
	}
	fmt.Fprintf(b, "\nReconciliation\n")
	renderChecks(b, pos.Checks, currency)
}

func renderChecks(b *strings.Builder, checks []reconcile.CashCheck, currency string) {
	for _, c := range checks {
		if c.Mismatched() {
			fmt.Fprintf(b, "  %-12s MISMATCH: journal %s, cash book %s, difference %s\n",
				orGeneral(c.ProjectCode),
				formatMoney(c.JournalCash, currency),
				formatMoney(c.CashBookCash, currency),
				formatMoney(c.Difference(), currency))
		} else {
			fmt.Fprintf(b, "  %-12s ok\n", orGeneral(c.ProjectCode))
		}
	}
}

func renderSnapshot(b *strings.Builder, snap *reconcile.Snapshot, currency string) {
	fmt.Fprintf(b, "RECONCILIATION\n")
	fmt.Fprintf(b, "Project:  %s\n", orAll(snap.Filter.ProjectCode))
	if !snap.Filter.Through.IsZero() {
		fmt.Fprintf(b, "Through:  %s\n", snap.Filter.Through.Format(model.DateLayout))
	}

	fmt.Fprintf(b, "\nBalances (%d journal rows)\n", snap.EntryCount)
	fmt.Fprintf(b, "  %-6s%-28s%14s%14s%14s\n", "CODE", "ACCOUNT", "DEBITS", "CREDITS", "BALANCE")
	for _, bal := range snap.Balances {
		fmt.Fprintf(b, "  %-6s%-28s%14s%14s%14s\n",
			bal.Account.Code,
			bal.Account.Name,
			formatMoney(bal.Debits, currency),
			formatMoney(bal.Credits, currency),
			formatMoney(bal.Balance, currency))
	}

	fmt.Fprintf(b, "\nCash checks\n")
	if len(snap.CashChecks) == 0 {
		fmt.Fprintf(b, "  (no cash activity)\n")
		return
	}
	renderChecks(b, snap.CashChecks, currency)
}

func renderInvoices(b *strings.Builder, out *OutstandingInvoices, currency string) {
	fmt.Fprintf(b, "OUTSTANDING INVOICES\n")
	fmt.Fprintf(b, "Project:  %s\n", orAll(out.ProjectCode))
	fmt.Fprintf(b, "As of:    %s\n\n", out.AsOf.Format(model.DateLayout))

	if len(out.Rows) == 0 {
		fmt.Fprintf(b, "  (none)\n")
	}
	for _, row := range out.Rows {
		fmt.Fprintf(b, "  %-12s%-12s%-11s%14s%7s\n",
			row.Invoice.InvoiceNo,
			row.Invoice.Date.Format(model.DateLayout),
			row.Invoice.Status,
			formatMoney(row.Invoice.Amount, currency),
			fmt.Sprintf("%dd", row.AgeDays))
	}
	fmt.Fprintf(b, "\n%-36s%14s\n", "Total outstanding", formatMoney(out.TotalOutstanding, currency))
}

func renderDebtAging(b *strings.Builder, aging *DebtAging, currency string) {
	fmt.Fprintf(b, "DEBT AGING\n")
	fmt.Fprintf(b, "As of:    %s\n\n", aging.AsOf.Format(model.DateLayout))

	fmt.Fprintf(b, "By bucket\n")
	for _, bucket := range AgingBuckets {
		fmt.Fprintf(b, "  %-8s%14s\n", bucket, formatMoney(aging.BucketTotals[bucket], currency))
	}

	if len(aging.Rows) > 0 {
		fmt.Fprintf(b, "\nBy record\n")
		for _, row := range aging.Rows {
			fmt.Fprintf(b, "  %-24s%-12s%6s  %-6s%14s\n",
				row.Record.Name,
				orGeneral(row.Record.ProjectCode),
				fmt.Sprintf("%dd", row.AgeDays),
				row.Bucket,
				formatMoney(row.Record.Amount, currency))
		}
	}

	fmt.Fprintf(b, "\n%-36s%14s\n", "Total debts", formatMoney(aging.TotalDebt, currency))
}

func renderOverview(b *strings.Builder, o *CompanyOverview, currency string) {
	fmt.Fprintf(b, "COMPANY OVERVIEW\n")
	fmt.Fprintf(b, "As of:    %s\n\n", o.AsOf.Format(model.DateLayout))

	fmt.Fprintf(b, "%-24s%14s\n", "Total invoiced", formatMoney(o.TotalInvoiced, currency))
	fmt.Fprintf(b, "%-24s%14s\n", "Total collected", formatMoney(o.TotalCollected, currency))
	fmt.Fprintf(b, "%-24s%14s\n", "Net cash", formatMoney(o.NetCash, currency))
	fmt.Fprintf(b, "%-24s%14s\n", "Debts outstanding", formatMoney(o.TotalDebts, currency))
	fmt.Fprintf(b, "%-24s%14s\n\n", "Fixed assets", formatMoney(o.TotalFixedAssets, currency))

	fmt.Fprintf(b, "%-24s%10s\n", "Collection ratio", formatPercent(o.CollectionRatio()))
	fmt.Fprintf(b, "%-24s%10s\n", "Debt to assets", formatRatio(o.DebtToAssets()))
	fmt.Fprintf(b, "%-24s%10s\n\n", "Cash coverage", formatRatio(o.CashCoverage()))

	fmt.Fprintf(b, "Alerts\n")
	if len(o.Alerts) == 0 {
		fmt.Fprintf(b, "  none\n")
	}
	for _, alert := range o.Alerts {
		fmt.Fprintf(b, "  - %s\n", alert)
	}
}

func renderProjects(b *strings.Builder, s *ProjectSummaries, currency string) {
	fmt.Fprintf(b, "PROJECT PROFITABILITY\n")
	if s.TopN > 0 {
		fmt.Fprintf(b, "Top:      %d\n", s.TopN)
	}
	fmt.Fprintf(b, "As of:    %s\n\n", s.AsOf.Format(model.DateLayout))

	fmt.Fprintf(b, "  %-10s%-24s%14s%14s%14s%9s\n",
		"CODE", "NAME", "REVENUE", "CASH OUT", "EST PROFIT", "MARGIN")
	for _, row := range s.Rows {
		fmt.Fprintf(b, "  %-10s%-24s%14s%14s%14s%9s\n",
			row.Project.Code,
			row.Project.Name,
			formatMoney(row.Revenue, currency),
			formatMoney(row.CashOut, currency),
			formatMoney(row.EstProfit, currency),
			formatPercent(row.Margin()))
	}
}
