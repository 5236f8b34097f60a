package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "sitebook-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "sitebook")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/sitebook")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runSitebook(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// initBooks initializes a fresh set of books and returns its directory.
func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runSitebook(t, "init", dir, "--name", "Test Construction Co", "--currency", "USD", "--actor", "tester")
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initBooks(t)

	for _, d := range []string{"logs", "backups"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}
	assert.FileExists(t, filepath.Join(dir, "books.yaml"))
	assert.FileExists(t, filepath.Join(dir, "sitebook.db"))
	assert.FileExists(t, filepath.Join(dir, "logs", "audit-log.csv"))
}

func TestInit_Config(t *testing.T) {
	dir := initBooks(t)

	data, err := os.ReadFile(filepath.Join(dir, "books.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Construction Co")
	assert.Contains(t, contents, "currency: USD")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runSitebook(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_Twice(t *testing.T) {
	dir := initBooks(t)
	out, err := runSitebook(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, out, "already initialized")
}

func TestAccounts_SeededChart(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "accounts", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Cash on Hand")
	assert.Contains(t, out, "Contract Revenue")
	assert.Contains(t, out, "Subcontractors")
}

func TestPost_Unbalanced(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "post",
		"--date", "2026-02-10",
		"-l", "5010:D:100", "-l", "1010:C:90")
	require.Error(t, err)
	assert.Contains(t, out, "does not balance")
}

func TestWorkflow_PostReconcileReport(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "project", "add", "P-001",
		"--name", "School Extension", "--client", "Ministry of Education",
		"--value", "250000", "--start", "2026-01-10", "--type", "building")
	require.NoError(t, err, out)

	// Client pays 5000 cash: journal and cash book both record it.
	out, err = runSitebook(t, "--books", dir, "post",
		"--date", "2026-02-10", "--project", "P-001", "--desc", "advance payment",
		"-l", "1010:D:5000", "-l", "4010:C:5000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Posted transaction 1")

	out, err = runSitebook(t, "--books", dir, "cash", "add",
		"--date", "2026-02-10", "--project", "P-001",
		"--desc", "advance payment", "--in", "5000")
	require.NoError(t, err, out)

	// Both views agree.
	out, err = runSitebook(t, "--books", dir, "reconcile")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "MISMATCH")

	// A cash payout recorded only in the cash book diverges.
	out, err = runSitebook(t, "--books", dir, "cash", "add",
		"--date", "2026-02-11", "--project", "P-001",
		"--desc", "site fuel", "--out", "200")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "reconcile")
	require.Error(t, err, "reconcile should exit nonzero on mismatch")
	assert.Contains(t, out, "MISMATCH")

	// Reports still render; mismatches never block reads.
	out, err = runSitebook(t, "--books", dir, "report", "pl", "--project", "P-001", "--as-of", "2026-03-31")
	require.NoError(t, err, out)
	assert.Contains(t, out, "PROFIT & LOSS")
	assert.Contains(t, out, "$5,000.00")
}

func TestWorkflow_InvoiceLifecycle(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "project", "add", "P-002", "--name", "Access Road")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "invoice", "issue", "P-002", "INV-001",
		"--date", "2026-02-01", "--amount", "12000", "--client", "Municipality")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "invoice", "status", "P-002", "INV-001", "paid")
	require.Error(t, err, "draft cannot jump to paid")
	assert.Contains(t, out, "invalid invoice status transition")

	out, err = runSitebook(t, "--books", dir, "invoice", "status", "P-002", "INV-001", "issued")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "invoice", "list", "--project", "P-002")
	require.NoError(t, err, out)
	assert.Contains(t, out, "INV-001")
	assert.Contains(t, out, "issued")
}

func TestReverse_NetsToZero(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "post",
		"--date", "2026-02-10", "--desc", "office rent",
		"-l", "5060:D:800", "-l", "1010:C:800")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "reverse", "1", "--date", "2026-02-11")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Reversed transaction 1 as transaction 2")

	// Second reversal is rejected.
	out, err = runSitebook(t, "--books", dir, "reverse", "1")
	require.Error(t, err)
	assert.Contains(t, out, "already reversed")

	out, err = runSitebook(t, "--books", dir, "journal", "--account", "5060")
	require.NoError(t, err, out)
	assert.Contains(t, out, "reversal: office rent")
	assert.Contains(t, out, "2 entries")
}

func TestReport_Overview(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "report", "overview", "--as-of", "2026-03-31")
	require.NoError(t, err, out)
	assert.Contains(t, out, "COMPANY OVERVIEW")
	assert.Contains(t, out, "Collection ratio")

	out, err = runSitebook(t, "--books", dir, "report", "balance-sheet")
	require.Error(t, err)
	assert.Contains(t, out, "unknown report")
}

func TestBackup_WritesFile(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "backup")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Backed up to")

	matches, err := filepath.Glob(filepath.Join(dir, "backups", "sitebook_backup_*.db"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExport_WritesTables(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "export")
	require.NoError(t, err, out)
	assert.Contains(t, out, "6 tables exported")

	data, err := os.ReadFile(filepath.Join(dir, "exports", "accounts.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1010,Cash on Hand,asset")
}

func TestDebt_AddAndReport(t *testing.T) {
	dir := initBooks(t)

	out, err := runSitebook(t, "--books", dir, "debt", "add",
		"--kind", "debt", "--name", "Supplier credit",
		"--amount", "3000", "--start", "2026-01-05")
	require.NoError(t, err, out)

	out, err = runSitebook(t, "--books", dir, "report", "debts", "--as-of", "2026-02-10")
	require.NoError(t, err, out)
	assert.Contains(t, out, "DEBT AGING")
	assert.Contains(t, out, "Supplier credit")
}
