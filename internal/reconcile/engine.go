package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// ErrMismatch marks a reconciliation that found cash book drift.
// Callers that want a non-zero exit on drift wrap it; the engine
// itself only reports.
var ErrMismatch = errors.New("cash book does not match journal")

// Engine recomputes account balances by folding the journal and
// cross-checks the journal's cash view against the cash book.
// cashAccount names the journal account the cash book shadows.
type Engine struct {
	store       *store.Store
	cashAccount string
}

// NewEngine creates a reconciliation engine backed by st.
func NewEngine(st *store.Store, cashAccount string) *Engine {
	return &Engine{store: st, cashAccount: cashAccount}
}

// Recompute folds the journal rows matching f, in (date, tx id) order,
// into per-account balances, then compares cash per project against
// the cash book. It reads committed rows only and never writes.
func (e *Engine) Recompute(ctx context.Context, f Filter) (*Snapshot, error) {
	chart, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}
	accounts := make(map[string]model.Account, len(chart))
	for _, a := range chart {
		accounts[a.Code] = a
	}

	entries, err := e.store.ListEntries(ctx, store.EntryFilter{
		ProjectCode: f.ProjectCode,
		AccountCode: f.AccountCode,
		Through:     f.Through,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	type totals struct {
		debits  decimal.Decimal
		credits decimal.Decimal
	}
	perAccount := make(map[string]totals)
	journalCash := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		if _, ok := accounts[entry.AccountCode]; !ok {
			return nil, fmt.Errorf("journal row %d references unknown account %s", entry.ID, entry.AccountCode)
		}
		t := perAccount[entry.AccountCode]
		t.debits = t.debits.Add(entry.Debit)
		t.credits = t.credits.Add(entry.Credit)
		perAccount[entry.AccountCode] = t

		if entry.AccountCode == e.cashAccount {
			journalCash[entry.ProjectCode] = journalCash[entry.ProjectCode].Add(entry.Debit).Sub(entry.Credit)
		}
	}

	codes := make([]string, 0, len(perAccount))
	for code := range perAccount {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	snap := &Snapshot{Filter: f, EntryCount: len(entries)}
	for _, code := range codes {
		account := accounts[code]
		t := perAccount[code]
		snap.Balances = append(snap.Balances, AccountBalance{
			Account: account,
			Debits:  t.debits,
			Credits: t.credits,
			Balance: signedBalance(account.Type, t.debits, t.credits),
		})
	}

	checks, err := e.checkCash(ctx, f, journalCash)
	if err != nil {
		return nil, err
	}
	snap.CashChecks = checks
	return snap, nil
}

// checkCash compares journal cash against the cash book per project.
// Skipped when no cash account is configured or when the snapshot is
// filtered to a non-cash account.
func (e *Engine) checkCash(ctx context.Context, f Filter, journalCash map[string]decimal.Decimal) ([]CashCheck, error) {
	if e.cashAccount == "" {
		return nil, nil
	}
	if f.AccountCode != "" && f.AccountCode != e.cashAccount {
		return nil, nil
	}

	lines, err := e.store.ListCashLines(ctx, store.CashFilter{
		ProjectCode: f.ProjectCode,
		Through:     f.Through,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cash book: %w", err)
	}

	bookCash := make(map[string]decimal.Decimal)
	for _, line := range lines {
		bookCash[line.ProjectCode] = bookCash[line.ProjectCode].Add(line.Net())
	}

	projects := make(map[string]bool)
	for code := range journalCash {
		projects[code] = true
	}
	for code := range bookCash {
		projects[code] = true
	}
	codes := make([]string, 0, len(projects))
	for code := range projects {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	checks := make([]CashCheck, 0, len(codes))
	for _, code := range codes {
		journal, ok := journalCash[code]
		if !ok {
			journal = decimal.Zero
		}
		book, ok := bookCash[code]
		if !ok {
			book = decimal.Zero
		}
		checks = append(checks, CashCheck{
			ProjectCode:  code,
			JournalCash:  journal,
			CashBookCash: book,
		})
	}
	return checks, nil
}

// signedBalance folds debit and credit totals into a balance signed in
// the account's normal direction.
func signedBalance(t model.AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
