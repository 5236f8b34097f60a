package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// EntryFilter narrows journal reads. Zero-valued fields do not filter.
type EntryFilter struct {
	ProjectCode string
	AccountCode string
	Through     time.Time // inclusive upper bound on entry date
}

// NextTxID allocates the next transaction id within tx. Must be called
// inside the same transaction that appends the entries so concurrent
// postings cannot observe the same id.
func (s *Store) NextTxID(ctx context.Context, tx *sql.Tx) (int64, error) {
	var next int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(tx_id), 0) + 1 FROM journal`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate tx id: %w", err)
	}
	return next, nil
}

// AppendEntries inserts journal rows inside tx. Rows are never updated
// or deleted afterwards; corrections are posted as reversals.
func (s *Store) AppendEntries(ctx context.Context, tx *sql.Tx, entries []model.JournalEntry) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO journal (tx_id, date, account_code, description,
		     debit, credit, ref, project_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.TxID, fmtDate(e.Date), e.AccountCode, e.Description,
			e.Debit.String(), e.Credit.String(), e.Reference, e.ProjectCode)
		if err != nil {
			return fmt.Errorf("failed to insert journal row: %w", err)
		}
	}
	return nil
}

// ListEntries returns journal rows matching f in (date, tx_id, row id)
// order, the canonical replay order for balance folds.
func (s *Store) ListEntries(ctx context.Context, f EntryFilter) ([]model.JournalEntry, error) {
	query := `SELECT id, tx_id, date, account_code, description,
	                 debit, credit, ref, project_code
	          FROM journal WHERE 1=1`
	var args []any
	if f.ProjectCode != "" {
		query += ` AND project_code = ?`
		args = append(args, f.ProjectCode)
	}
	if f.AccountCode != "" {
		query += ` AND account_code = ?`
		args = append(args, f.AccountCode)
	}
	if !f.Through.IsZero() {
		query += ` AND date <= ?`
		args = append(args, fmtDate(f.Through))
	}
	query += ` ORDER BY date, tx_id, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// EntriesByTx returns all rows of one transaction in row order.
// Returns ErrNotFound if the transaction id is unknown.
func (s *Store) EntriesByTx(ctx context.Context, txID int64) ([]model.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tx_id, date, account_code, description,
		        debit, credit, ref, project_code
		 FROM journal WHERE tx_id = ? ORDER BY id`, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", txID, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrNotFound)
	}
	return entries, nil
}

// RefExists reports whether any journal row carries the reference.
func (s *Store) RefExists(ctx context.Context, ref string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM journal WHERE ref = ?`, ref).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query ref %q: %w", ref, err)
	}
	return n > 0, nil
}

// CountEntries returns the total number of journal rows.
func (s *Store) CountEntries(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM journal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal rows: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]model.JournalEntry, error) {
	var out []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		var date, debit, credit string
		if err := rows.Scan(&e.ID, &e.TxID, &date, &e.AccountCode, &e.Description,
			&debit, &credit, &e.Reference, &e.ProjectCode); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		var err error
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if e.Debit, err = parseAmount(debit); err != nil {
			return nil, err
		}
		if e.Credit, err = parseAmount(credit); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
