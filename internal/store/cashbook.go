package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// CashFilter narrows cash book reads. Zero-valued fields do not filter.
type CashFilter struct {
	ProjectCode string
	Through     time.Time
}

// AddCashLine appends a line to the cash book and returns its row id.
func (s *Store) AddCashLine(ctx context.Context, l model.CashBookLine) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cash_book (date, project_code, description, method,
		     ref_no, debit, credit, remarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fmtDate(l.Date), l.ProjectCode, l.Description, l.Method,
		l.RefNo, l.Debit.String(), l.Credit.String(), l.Remarks)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cash line: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to insert cash line: %w", err)
	}
	return id, nil
}

// ListCashLines returns cash book lines matching f in (date, row id)
// order.
func (s *Store) ListCashLines(ctx context.Context, f CashFilter) ([]model.CashBookLine, error) {
	query := `SELECT id, date, project_code, description, method,
	                 ref_no, debit, credit, remarks
	          FROM cash_book WHERE 1=1`
	var args []any
	if f.ProjectCode != "" {
		query += ` AND project_code = ?`
		args = append(args, f.ProjectCode)
	}
	if !f.Through.IsZero() {
		query += ` AND date <= ?`
		args = append(args, fmtDate(f.Through))
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash book: %w", err)
	}
	defer rows.Close()

	var out []model.CashBookLine
	for rows.Next() {
		var l model.CashBookLine
		var date, debit, credit string
		if err := rows.Scan(&l.ID, &date, &l.ProjectCode, &l.Description,
			&l.Method, &l.RefNo, &debit, &credit, &l.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan cash line: %w", err)
		}
		if l.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if l.Debit, err = parseAmount(debit); err != nil {
			return nil, err
		}
		if l.Credit, err = parseAmount(credit); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
