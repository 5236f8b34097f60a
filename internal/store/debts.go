package store

import (
	"context"
	"fmt"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// DebtFilter narrows debts register reads. Zero-valued fields do not
// filter.
type DebtFilter struct {
	ProjectCode string
	Kind        model.DebtKind
}

// AddDebt appends a record to the debts register and returns its row
// id.
func (s *Store) AddDebt(ctx context.Context, d model.DebtOrAsset) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO debts_fixed (kind, name, project_code, amount,
		     start_date, remarks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(d.Kind), d.Name, d.ProjectCode, d.Amount.String(),
		fmtDate(d.StartDate), d.Remarks)
	if err != nil {
		return 0, fmt.Errorf("failed to insert debt record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to insert debt record: %w", err)
	}
	return id, nil
}

// ListDebts returns debts register records matching f in (start date,
// row id) order.
func (s *Store) ListDebts(ctx context.Context, f DebtFilter) ([]model.DebtOrAsset, error) {
	query := `SELECT id, kind, name, project_code, amount, start_date, remarks
	          FROM debts_fixed WHERE 1=1`
	var args []any
	if f.ProjectCode != "" {
		query += ` AND project_code = ?`
		args = append(args, f.ProjectCode)
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	query += ` ORDER BY start_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts register: %w", err)
	}
	defer rows.Close()

	var out []model.DebtOrAsset
	for rows.Next() {
		var d model.DebtOrAsset
		var kind, amount, start string
		if err := rows.Scan(&d.ID, &kind, &d.Name, &d.ProjectCode,
			&amount, &start, &d.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan debt record: %w", err)
		}
		d.Kind = model.DebtKind(kind)
		if d.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		if d.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
