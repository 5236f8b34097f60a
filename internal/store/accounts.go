package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// PutAccount inserts a new account. Returns ErrDuplicate if the code
// is already taken.
func (s *Store) PutAccount(ctx context.Context, a model.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (code, name, type) VALUES (?, ?, ?)`,
		a.Code, a.Name, string(a.Type))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", a.Code, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert account %s: %w", a.Code, err)
	}
	return nil
}

// GetAccount looks up an account by code. Returns ErrNotFound if the
// code is not in the chart.
func (s *Store) GetAccount(ctx context.Context, code string) (model.Account, error) {
	var a model.Account
	var typ string
	err := s.db.QueryRowContext(ctx,
		`SELECT code, name, type FROM accounts WHERE code = ?`, code).
		Scan(&a.Code, &a.Name, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to query account %s: %w", code, err)
	}
	a.Type = model.AccountType(typ)
	return a, nil
}

// AccountExists reports whether code is present in the chart.
func (s *Store) AccountExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE code = ?`, code).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query account %s: %w", code, err)
	}
	return n > 0, nil
}

// ListAccounts returns the chart ordered by code.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name, type FROM accounts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		if err := rows.Scan(&a.Code, &a.Name, &typ); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = model.AccountType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SeedAccounts inserts any accounts whose codes are not yet present
// and returns how many were added. Existing codes are left untouched,
// so seeding is idempotent.
func (s *Store) SeedAccounts(ctx context.Context, accounts []model.Account) (int, error) {
	added := 0
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		for _, a := range accounts {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO accounts (code, name, type) VALUES (?, ?, ?)
				 ON CONFLICT(code) DO NOTHING`,
				a.Code, a.Name, string(a.Type))
			if err != nil {
				return fmt.Errorf("failed to seed account %s: %w", a.Code, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to seed account %s: %w", a.Code, err)
			}
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
