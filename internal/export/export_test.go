package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.PutAccount(ctx, model.Account{Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset}))
	require.NoError(t, st.PutAccount(ctx, model.Account{Code: "4010", Name: "Contract Revenue", Type: model.AccountTypeIncome}))

	_, err = st.CreateProject(ctx, model.Project{
		Code: "P-001", Name: "School Extension", ClientName: "Ministry",
		ContractValue: dec("250000"), StartDate: date("2026-01-10"), Status: model.ProjectActive, Type: "building",
	})
	require.NoError(t, err)

	require.NoError(t, st.WithTx(ctx, func(tx *sql.Tx) error {
		txID, err := st.NextTxID(ctx, tx)
		if err != nil {
			return err
		}
		return st.AppendEntries(ctx, tx, []model.JournalEntry{
			{TxID: txID, Date: date("2026-02-10"), AccountCode: "1010", Description: "advance", Debit: dec("1500"), Credit: decimal.Zero, Reference: "rcpt-1", ProjectCode: "P-001"},
			{TxID: txID, Date: date("2026-02-10"), AccountCode: "4010", Description: "advance", Debit: decimal.Zero, Credit: dec("1500"), Reference: "rcpt-1", ProjectCode: "P-001"},
		})
	}))

	_, err = st.AddCashLine(ctx, model.CashBookLine{
		Date: date("2026-02-10"), ProjectCode: "P-001", Description: "advance",
		Method: "cash", Debit: dec("1500"), Credit: decimal.Zero,
	})
	require.NoError(t, err)

	_, err = st.CreateInvoice(ctx, model.Invoice{
		InvoiceNo: "INV-001", Date: date("2026-02-01"), ProjectCode: "P-001",
		ClientName: "Ministry", Amount: dec("12000"), Status: model.InvoiceIssued,
	})
	require.NoError(t, err)

	_, err = st.AddDebt(ctx, model.DebtOrAsset{
		Kind: model.KindDebt, Name: "Supplier credit", Amount: dec("3000"), StartDate: date("2026-01-05"),
	})
	require.NoError(t, err)

	return st
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportWritesEveryTable(t *testing.T) {
	st := seededStore(t)
	dir := filepath.Join(t.TempDir(), "exports")

	paths, err := Export(context.Background(), st, dir)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	for _, name := range []string{"accounts", "projects", "journal", "cash_book", "invoices", "debts_fixed"} {
		assert.FileExists(t, filepath.Join(dir, name+".csv"))
	}
}

func TestExportJournalCells(t *testing.T) {
	st := seededStore(t)
	dir := t.TempDir()

	_, err := Export(context.Background(), st, dir)
	require.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "journal.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "tx_id", "date", "account_code", "description", "debit", "credit", "ref", "project_code"}, records[0])

	debitRow := records[1]
	assert.Equal(t, "1", debitRow[1])
	assert.Equal(t, "2026-02-10", debitRow[2])
	assert.Equal(t, "1010", debitRow[3])
	assert.Equal(t, "1500.00", debitRow[5])
	assert.Equal(t, "", debitRow[6], "zero side stays empty")
	assert.Equal(t, "rcpt-1", debitRow[7])

	creditRow := records[2]
	assert.Equal(t, "4010", creditRow[3])
	assert.Equal(t, "", creditRow[5])
	assert.Equal(t, "1500.00", creditRow[6])
}

func TestExportProjectsAndInvoices(t *testing.T) {
	st := seededStore(t)
	dir := t.TempDir()

	_, err := Export(context.Background(), st, dir)
	require.NoError(t, err)

	projects := readCSV(t, filepath.Join(dir, "projects.csv"))
	require.Len(t, projects, 2)
	assert.Equal(t, "P-001", projects[1][1])
	assert.Equal(t, "250000.00", projects[1][5])
	assert.Equal(t, "active", projects[1][7])

	invoices := readCSV(t, filepath.Join(dir, "invoices.csv"))
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV-001", invoices[1][1])
	assert.Equal(t, "issued", invoices[1][7])
}

func TestExportEmptyStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	dir := t.TempDir()
	paths, err := Export(context.Background(), st, dir)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	// Headers only.
	records := readCSV(t, filepath.Join(dir, "accounts.csv"))
	assert.Len(t, records, 1)
}
