package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// Filter narrows a recomputation. Zero-valued fields do not filter.
type Filter struct {
	ProjectCode string
	AccountCode string
	Through     time.Time // inclusive upper bound on entry date
}

// AccountBalance is the folded position of one account. Balance is
// signed in the account's normal direction: a debit-normal account
// grows with debits, a credit-normal account grows with credits.
type AccountBalance struct {
	Account model.Account
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Balance decimal.Decimal
}

// CashCheck compares the journal's view of cash with the cash book
// for one project. An empty project code is the general bucket.
type CashCheck struct {
	ProjectCode  string
	JournalCash  decimal.Decimal
	CashBookCash decimal.Decimal
}

// Difference returns journal cash minus cash book cash.
func (c CashCheck) Difference() decimal.Decimal {
	return c.JournalCash.Sub(c.CashBookCash)
}

// Mismatched reports whether the two views diverge.
func (c CashCheck) Mismatched() bool {
	return !c.Difference().IsZero()
}

// Snapshot is the result of one recomputation. It is derived purely
// from stored rows, so recomputing without intervening writes yields
// an identical snapshot.
type Snapshot struct {
	Filter     Filter
	Balances   []AccountBalance // ordered by account code
	EntryCount int
	CashChecks []CashCheck // ordered by project code
}

// Balance returns the folded balance for an account code, or zero if
// the account saw no activity in the snapshot.
func (s *Snapshot) Balance(code string) decimal.Decimal {
	for _, b := range s.Balances {
		if b.Account.Code == code {
			return b.Balance
		}
	}
	return decimal.Zero
}

// Mismatches returns the cash checks that diverge. Mismatches are
// findings: they are reported, never corrected automatically, and do
// not block any other operation.
func (s *Snapshot) Mismatches() []CashCheck {
	var out []CashCheck
	for _, c := range s.CashChecks {
		if c.Mismatched() {
			out = append(out, c)
		}
	}
	return out
}
