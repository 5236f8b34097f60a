package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// InvoiceFilter narrows invoice reads. Zero-valued fields do not
// filter.
type InvoiceFilter struct {
	ProjectCode string
	Status      model.InvoiceStatus
	Through     time.Time
}

// CreateInvoice inserts a new invoice and returns its row id. Returns
// ErrDuplicate if the (project, invoice number) pair already exists.
func (s *Store) CreateInvoice(ctx context.Context, inv model.Invoice) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (invoice_no, date, project_code, client_name,
		     description, amount, status, remarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.InvoiceNo, fmtDate(inv.Date), inv.ProjectCode, inv.ClientName,
		inv.Description, inv.Amount.String(), string(inv.Status), inv.Remarks)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("invoice %s/%s: %w", inv.ProjectCode, inv.InvoiceNo, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert invoice %s/%s: %w", inv.ProjectCode, inv.InvoiceNo, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to insert invoice %s/%s: %w", inv.ProjectCode, inv.InvoiceNo, err)
	}
	return id, nil
}

// GetInvoice looks up an invoice by project and number. Returns
// ErrNotFound if no such invoice exists.
func (s *Store) GetInvoice(ctx context.Context, projectCode, invoiceNo string) (model.Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, invoice_no, date, project_code, client_name,
		        description, amount, status, remarks
		 FROM invoices WHERE project_code = ? AND invoice_no = ?`,
		projectCode, invoiceNo)
	inv, err := scanInvoice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, fmt.Errorf("invoice %s/%s: %w", projectCode, invoiceNo, ErrNotFound)
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("failed to query invoice %s/%s: %w", projectCode, invoiceNo, err)
	}
	return inv, nil
}

// ListInvoices returns invoices matching f in (date, row id) order.
func (s *Store) ListInvoices(ctx context.Context, f InvoiceFilter) ([]model.Invoice, error) {
	query := `SELECT id, invoice_no, date, project_code, client_name,
	                 description, amount, status, remarks
	          FROM invoices WHERE 1=1`
	var args []any
	if f.ProjectCode != "" {
		query += ` AND project_code = ?`
		args = append(args, f.ProjectCode)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if !f.Through.IsZero() {
		query += ` AND date <= ?`
		args = append(args, fmtDate(f.Through))
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var out []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// SetInvoiceStatus moves invoice id from status from to status to.
// The guard on the previous status makes concurrent updates lose
// cleanly: ErrNotFound means the invoice is gone or no longer in the
// expected status.
func (s *Store) SetInvoiceStatus(ctx context.Context, id int64, from, to model.InvoiceStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update invoice %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update invoice %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("invoice %d in status %s: %w", id, from, ErrNotFound)
	}
	return nil
}

func scanInvoice(scan func(dest ...any) error) (model.Invoice, error) {
	var inv model.Invoice
	var date, amount, status string
	if err := scan(&inv.ID, &inv.InvoiceNo, &date, &inv.ProjectCode,
		&inv.ClientName, &inv.Description, &amount, &status, &inv.Remarks); err != nil {
		return model.Invoice{}, err
	}
	var err error
	if inv.Date, err = parseDate(date); err != nil {
		return model.Invoice{}, err
	}
	if inv.Amount, err = parseAmount(amount); err != nil {
		return model.Invoice{}, err
	}
	inv.Status = model.InvoiceStatus(status)
	return inv, nil
}
