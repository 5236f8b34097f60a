package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
)

func render(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v, "USD"))
	return buf.String()
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderProfitLoss_Golden(t *testing.T) {
	pl := &ProfitLoss{
		ProjectCode: "P-001",
		AsOf:        day("2026-03-31"),
		Revenue: []Line{
			{AccountCode: "4010", AccountName: "Contract Revenue", Amount: dec("12500.00")},
			{AccountCode: "4020", AccountName: "Variation Revenue", Amount: dec("800.00")},
		},
		Expenses: []Line{
			{AccountCode: "5010", AccountName: "Materials", Amount: dec("4200.00")},
			{AccountCode: "5040", AccountName: "Site Wages", Amount: dec("1500.50")},
		},
		TotalRevenue:  dec("13300.00"),
		TotalExpenses: dec("5700.50"),
		NetProfit:     dec("7599.50"),
	}

	g := newGoldie(t)
	g.Assert(t, "profit_loss", []byte(render(t, pl)))
}

func TestRenderOverview_Golden(t *testing.T) {
	o := &CompanyOverview{
		AsOf:             day("2026-03-31"),
		TotalInvoiced:    dec("30000.00"),
		TotalCollected:   dec("18000.00"),
		NetCash:          dec("3800.00"),
		TotalDebts:       dec("10000.00"),
		TotalFixedAssets: dec("25000.00"),
		Alerts: []string{
			"collection ratio 60.0% below target 70.0%",
			"net cash covers only 0.38 of outstanding debts",
		},
	}

	g := newGoldie(t)
	g.Assert(t, "overview", []byte(render(t, o)))
}

func TestRenderCashPosition_ShowsMismatch(t *testing.T) {
	pos := &CashPosition{
		ProjectCode: "P-001",
		AsOf:        day("2026-03-31"),
		CashIn:      dec("200.00"),
		CashOut:     dec("0"),
		NetCash:     dec("200.00"),
		JournalCash: dec("0"),
		Checks: []reconcile.CashCheck{
			{ProjectCode: "P-001", JournalCash: dec("0"), CashBookCash: dec("200.00")},
		},
	}

	out := render(t, pos)
	assert.Contains(t, out, "CASH POSITION")
	assert.Contains(t, out, "MISMATCH")
	assert.Contains(t, out, "difference -$200.00")
}

func TestRenderSnapshot_BalancesAndChecks(t *testing.T) {
	snap := &reconcile.Snapshot{
		Filter: reconcile.Filter{ProjectCode: "P-001", Through: day("2026-03-31")},
		Balances: []reconcile.AccountBalance{
			{Account: model.Account{Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset},
				Debits: dec("5000"), Credits: dec("200"), Balance: dec("4800")},
			{Account: model.Account{Code: "4010", Name: "Contract Revenue", Type: model.AccountTypeIncome},
				Debits: dec("0"), Credits: dec("5000"), Balance: dec("5000")},
		},
		EntryCount: 3,
		CashChecks: []reconcile.CashCheck{
			{ProjectCode: "P-001", JournalCash: dec("4800"), CashBookCash: dec("5000")},
		},
	}

	out := render(t, snap)
	assert.Contains(t, out, "RECONCILIATION")
	assert.Contains(t, out, "Through:  2026-03-31")
	assert.Contains(t, out, "Balances (3 journal rows)")
	assert.Contains(t, out, "Cash on Hand")
	assert.Contains(t, out, "$4,800.00")
	assert.Contains(t, out, "MISMATCH: journal $4,800.00, cash book $5,000.00, difference -$200.00")
}

func TestRenderSnapshot_NoCashActivity(t *testing.T) {
	snap := &reconcile.Snapshot{
		Balances: []reconcile.AccountBalance{
			{Account: model.Account{Code: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity},
				Credits: dec("10000"), Balance: dec("10000")},
		},
		EntryCount: 1,
	}

	out := render(t, snap)
	assert.Contains(t, out, "Project:  (all projects)")
	assert.NotContains(t, out, "Through:")
	assert.Contains(t, out, "(no cash activity)")
}

func TestRenderInvoices_ListsAges(t *testing.T) {
	out := render(t, &OutstandingInvoices{
		ProjectCode: "P-001",
		AsOf:        day("2026-03-31"),
		Rows: []InvoiceAging{
			{Invoice: model.Invoice{InvoiceNo: "INV-001", Date: day("2026-01-15"),
				Amount: dec("25000.00"), Status: model.InvoiceIssued}, AgeDays: 75},
		},
		TotalOutstanding: dec("25000.00"),
	})
	assert.Contains(t, out, "INV-001")
	assert.Contains(t, out, "issued")
	assert.Contains(t, out, "75d")
	assert.Contains(t, out, "Total outstanding")
}

func TestRenderInvoices_Empty(t *testing.T) {
	out := render(t, &OutstandingInvoices{
		ProjectCode:      "P-001",
		AsOf:             day("2026-03-31"),
		TotalOutstanding: dec("0"),
	})
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "$0.00")
}

func TestRenderDebtAging_BucketOrder(t *testing.T) {
	aging := &DebtAging{
		AsOf: day("2026-03-31"),
		BucketTotals: map[AgingBucket]decimal.Decimal{
			Bucket0to30:  dec("1000"),
			Bucket31to60: dec("0"),
			Bucket61to90: dec("0"),
			BucketOver90: dec("4000"),
		},
		TotalDebt: dec("5000"),
		Rows: []DebtAgingRow{
			{Record: model.DebtOrAsset{Name: "Supplier credit", ProjectCode: "P-001",
				Amount: dec("1000")}, AgeDays: 10, Bucket: Bucket0to30},
		},
	}

	out := render(t, aging)
	assert.Contains(t, out, "Supplier credit")
	assert.Contains(t, out, "Total debts")
	assert.Less(t, strings.Index(out, "0-30"), strings.Index(out, "90+"),
		"buckets render in age order")
}

func TestRenderProjects_Table(t *testing.T) {
	out := render(t, &ProjectSummaries{
		AsOf: day("2026-03-31"),
		TopN: 5,
		Rows: []ProjectSummary{
			{Project: model.Project{Code: "P-001", Name: "Riverside Apartments"},
				Revenue: dec("12500"), CashIn: dec("9000"), CashOut: dec("4200"),
				NetCash: dec("4800"), EstProfit: dec("8300")},
		},
	})
	assert.Contains(t, out, "PROJECT PROFITABILITY")
	assert.Contains(t, out, "Top:      5")
	assert.Contains(t, out, "P-001")
	assert.Contains(t, out, "66.4%")
}

func TestRender_RejectsUnknownType(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, struct{}{}, "USD")
	require.Error(t, err)
}
