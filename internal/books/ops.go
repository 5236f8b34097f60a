package books

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sitebook-dev/sitebook/internal/export"
	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/posting"
)

// CreateProject registers a new project. The code must be unique;
// store.ErrDuplicate surfaces unchanged on a clash.
func (b *Books) CreateProject(ctx context.Context, p model.Project) (int64, error) {
	if p.Code == "" {
		return 0, fmt.Errorf("project code is required")
	}
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if !p.Status.Valid() {
		return 0, fmt.Errorf("invalid project status %q", p.Status)
	}

	id, err := b.store.CreateProject(ctx, p)
	if err != nil {
		return 0, err
	}
	b.audit("project-create", p.Name, p.Code)
	return id, nil
}

// UpdateProjectStatus moves a project along its lifecycle.
func (b *Books) UpdateProjectStatus(ctx context.Context, code string, status model.ProjectStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid project status %q", status)
	}
	if err := b.store.SetProjectStatus(ctx, code, status); err != nil {
		return err
	}
	b.audit("project-status", string(status), code)
	return nil
}

// PostTransaction validates and appends a balanced transaction to the
// journal. Returns the allocated tx id.
func (b *Books) PostTransaction(ctx context.Context, tx posting.Transaction) (int64, error) {
	for _, line := range tx.Lines {
		if err := b.checkProject(ctx, line.ProjectCode); err != nil {
			return 0, err
		}
	}

	txID, err := b.posting.Post(ctx, tx)
	if err != nil {
		return 0, err
	}
	detail := fmt.Sprintf("%d lines on %s", len(tx.Lines), tx.Date.Format(model.DateLayout))
	b.audit("post", detail, fmt.Sprintf("tx:%d", txID))
	return txID, nil
}

// ReverseTransaction appends the compensating transaction for txID at
// date. Returns the reversal's tx id.
func (b *Books) ReverseTransaction(ctx context.Context, txID int64, date time.Time) (int64, error) {
	revID, err := b.posting.Reverse(ctx, txID, date)
	if err != nil {
		return 0, err
	}
	b.audit("reverse", fmt.Sprintf("reversal of tx %d", txID), fmt.Sprintf("tx:%d", revID))
	return revID, nil
}

// RecordCashLine appends a line to the physical cash book. The cash
// book is kept independently of the journal; nothing is posted, and
// divergence between the two surfaces at reconciliation time.
func (b *Books) RecordCashLine(ctx context.Context, l model.CashBookLine) (int64, error) {
	if l.Date.IsZero() {
		return 0, fmt.Errorf("cash line date is required")
	}
	if err := b.checkProject(ctx, l.ProjectCode); err != nil {
		return 0, err
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() ||
		l.Debit.IsZero() == l.Credit.IsZero() ||
		!model.ValidScale(l.Debit) || !model.ValidScale(l.Credit) {
		return 0, ErrInvalidCashLine
	}

	cashID, err := b.store.AddCashLine(ctx, l)
	if err != nil {
		return 0, err
	}
	b.audit("cash", l.Description, fmt.Sprintf("cash:%d", cashID))
	return cashID, nil
}

// IssueInvoice records a client invoice against a project. The status
// defaults to draft; the (project, number) pair must be unique.
func (b *Books) IssueInvoice(ctx context.Context, inv model.Invoice) (int64, error) {
	if inv.InvoiceNo == "" {
		return 0, fmt.Errorf("invoice number is required")
	}
	if inv.ProjectCode == "" {
		return 0, fmt.Errorf("%w: invoices must name a project", ErrUnknownProject)
	}
	if err := b.checkProject(ctx, inv.ProjectCode); err != nil {
		return 0, err
	}
	if !inv.Amount.IsPositive() || !model.ValidScale(inv.Amount) {
		return 0, fmt.Errorf("invalid invoice amount %s", inv.Amount)
	}
	if inv.Status == "" {
		inv.Status = model.InvoiceDraft
	}
	if !inv.Status.Valid() {
		return 0, fmt.Errorf("invalid invoice status %q", inv.Status)
	}

	invID, err := b.store.CreateInvoice(ctx, inv)
	if err != nil {
		return 0, err
	}
	b.audit("invoice-issue", inv.Description, inv.ProjectCode+"/"+inv.InvoiceNo)
	return invID, nil
}

// UpdateInvoiceStatus moves an invoice along its lifecycle. Disallowed
// moves return model.ErrInvalidTransition.
func (b *Books) UpdateInvoiceStatus(ctx context.Context, projectCode, invoiceNo string, next model.InvoiceStatus) error {
	if !next.Valid() {
		return fmt.Errorf("invalid invoice status %q", next)
	}

	inv, err := b.store.GetInvoice(ctx, projectCode, invoiceNo)
	if err != nil {
		return err
	}
	if !inv.Status.CanTransition(next) {
		return fmt.Errorf("%s -> %s: %w", inv.Status, next, model.ErrInvalidTransition)
	}
	if err := b.store.SetInvoiceStatus(ctx, inv.ID, inv.Status, next); err != nil {
		return err
	}
	b.audit("invoice-status", fmt.Sprintf("%s -> %s", inv.Status, next), projectCode+"/"+invoiceNo)
	return nil
}

// RecordDebt adds a debt or fixed asset to the register.
func (b *Books) RecordDebt(ctx context.Context, d model.DebtOrAsset) (int64, error) {
	if !d.Kind.Valid() {
		return 0, fmt.Errorf("invalid kind %q", d.Kind)
	}
	if d.Name == "" {
		return 0, fmt.Errorf("debt name is required")
	}
	if !d.Amount.IsPositive() || !model.ValidScale(d.Amount) {
		return 0, fmt.Errorf("invalid amount %s", d.Amount)
	}
	if err := b.checkProject(ctx, d.ProjectCode); err != nil {
		return 0, err
	}

	debtID, err := b.store.AddDebt(ctx, d)
	if err != nil {
		return 0, err
	}
	b.audit("debt", d.Name, fmt.Sprintf("%s:%d", d.Kind, debtID))
	return debtID, nil
}

// SeedChart installs the default chart of accounts. Codes already
// present are left untouched, so seeding twice is safe. Returns how
// many accounts were added.
func (b *Books) SeedChart(ctx context.Context) (int, error) {
	return b.store.SeedAccounts(ctx, DefaultChart())
}

// Backup snapshots the database into destDir (the configured backup
// directory when empty) and returns the snapshot path.
func (b *Books) Backup(ctx context.Context, destDir string) (string, error) {
	if destDir == "" {
		destDir = b.cfg.Backup.Dir
	}
	if !filepath.IsAbs(destDir) {
		destDir = filepath.Join(b.root, destDir)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	base := filepath.Base(b.cfg.Database.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	stamp := time.Now().UTC().Format("20060102_150405")
	path := filepath.Join(destDir, fmt.Sprintf("%s_backup_%s.db", name, stamp))

	if err := b.store.BackupTo(ctx, path); err != nil {
		return "", err
	}
	b.audit("backup", "database snapshot", path)
	return path, nil
}

// ExportCSV dumps every table to CSV files under destDir ("exports"
// under the books directory when empty) and returns the written paths.
func (b *Books) ExportCSV(ctx context.Context, destDir string) ([]string, error) {
	if destDir == "" {
		destDir = "exports"
	}
	if !filepath.IsAbs(destDir) {
		destDir = filepath.Join(b.root, destDir)
	}

	paths, err := export.Export(ctx, b.store, destDir)
	if err != nil {
		return nil, err
	}
	b.audit("export", fmt.Sprintf("%d tables", len(paths)), destDir)
	return paths, nil
}

// checkProject validates an optional project code reference. Empty
// codes pass: not every line belongs to a project.
func (b *Books) checkProject(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	ok, err := b.store.ProjectExists(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProject, code)
	}
	return nil
}
