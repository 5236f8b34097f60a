package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// ValidationError describes a single invariant violation in a
// submitted transaction. It unwraps to the matching sentinel.
type ValidationError struct {
	Line        int // 1-based position, 0 for transaction-level checks
	AccountCode string
	Err         error
	Description string
}

func (e ValidationError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", e.Err, e.Description)
	}
	return fmt.Sprintf("line %d [%s]: %v: %s", e.Line, e.AccountCode, e.Err, e.Description)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// AccountChecker tests whether an account code exists in the chart of
// accounts.
type AccountChecker interface {
	AccountExists(ctx context.Context, code string) (bool, error)
}

// ValidateLines enforces the posting invariants on a transaction's
// lines: every amount strictly positive with at most two decimal
// places, every account known, and debits equal to credits overall.
// All violations are collected rather than stopping at the first. The
// second return is an infrastructure failure looking up accounts.
func ValidateLines(ctx context.Context, lines []Line, accounts AccountChecker) ([]ValidationError, error) {
	var verrs []ValidationError

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		n := i + 1

		if !line.Side.Valid() {
			verrs = append(verrs, ValidationError{
				Line:        n,
				AccountCode: line.AccountCode,
				Err:         ErrInvalidAmount,
				Description: fmt.Sprintf("side %q must be debit or credit", line.Side),
			})
			continue
		}

		if !line.Amount.IsPositive() {
			verrs = append(verrs, ValidationError{
				Line:        n,
				AccountCode: line.AccountCode,
				Err:         ErrInvalidAmount,
				Description: fmt.Sprintf("amount %s must be positive", line.Amount),
			})
		} else if !model.ValidScale(line.Amount) {
			verrs = append(verrs, ValidationError{
				Line:        n,
				AccountCode: line.AccountCode,
				Err:         ErrInvalidAmount,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", line.Amount),
			})
		}

		ok, err := accounts.AccountExists(ctx, line.AccountCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check account %s: %w", line.AccountCode, err)
		}
		if !ok {
			verrs = append(verrs, ValidationError{
				Line:        n,
				AccountCode: line.AccountCode,
				Err:         ErrUnknownAccount,
				Description: fmt.Sprintf("account %s is not in the chart", line.AccountCode),
			})
		}

		switch line.Side {
		case model.SideDebit:
			totalDebit = totalDebit.Add(line.Amount)
		case model.SideCredit:
			totalCredit = totalCredit.Add(line.Amount)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		verrs = append(verrs, ValidationError{
			Err: ErrUnbalanced,
			Description: fmt.Sprintf("debits (%s) != credits (%s)",
				totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	return verrs, nil
}
