package posting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/id"
	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// Line is one side of a transaction submitted for posting.
type Line struct {
	AccountCode string
	Side        model.Side
	Amount      decimal.Decimal
	Description string
	ProjectCode string // empty = not attributed to a project
}

// Transaction is a set of lines posted atomically under one tx id.
// Reference ties the journal rows back to a source document; when
// empty the engine generates one.
type Transaction struct {
	Date      time.Time
	Reference string
	Lines     []Line
}

var errMissingDate = errors.New("transaction date is required")

// Engine validates transactions and appends them to the journal.
// The journal is append-only: corrections go through Reverse, never
// through updates.
type Engine struct {
	store *store.Store
	locks *lockTable
}

// NewEngine creates a posting engine backed by st.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st, locks: newLockTable()}
}

// Post validates tx and appends its lines to the journal in a single
// database transaction. Either every line lands or none does. Returns
// the allocated tx id.
func (e *Engine) Post(ctx context.Context, tx Transaction) (int64, error) {
	if len(tx.Lines) == 0 {
		return 0, ErrEmptyTransaction
	}
	if tx.Date.IsZero() {
		return 0, errMissingDate
	}

	release := e.locks.acquire(projectCodes(tx.Lines))
	defer release()

	verrs, err := ValidateLines(ctx, tx.Lines, e.store)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return 0, errors.Join(errs...)
	}

	return e.append(ctx, buildEntries(tx))
}

// Reverse appends a compensating transaction that flips every line of
// txID, posted at reversalDate. A transaction can be reversed once;
// the reversal's reference records the link. Returns the reversal's
// tx id.
func (e *Engine) Reverse(ctx context.Context, txID int64, reversalDate time.Time) (int64, error) {
	if reversalDate.IsZero() {
		return 0, errMissingDate
	}

	orig, err := e.store.EntriesByTx(ctx, txID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	codes := make([]string, len(orig))
	for i, entry := range orig {
		codes[i] = entry.ProjectCode
	}
	release := e.locks.acquire(codes)
	defer release()

	// The project locks are held, so the check cannot race another
	// reversal of the same transaction.
	ref := id.ReversalRef(txID)
	reversed, err := e.store.RefExists(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if reversed {
		return 0, fmt.Errorf("transaction %d: %w", txID, ErrAlreadyReversed)
	}

	entries := make([]model.JournalEntry, len(orig))
	for i, src := range orig {
		entries[i] = model.JournalEntry{
			Date:        reversalDate,
			AccountCode: src.AccountCode,
			Description: "reversal: " + src.Description,
			Debit:       src.Credit,
			Credit:      src.Debit,
			Reference:   ref,
			ProjectCode: src.ProjectCode,
		}
	}
	return e.append(ctx, entries)
}

// append allocates a tx id and inserts the rows atomically.
func (e *Engine) append(ctx context.Context, entries []model.JournalEntry) (int64, error) {
	var txID int64
	err := e.store.WithTx(ctx, func(stx *sql.Tx) error {
		var err error
		txID, err = e.store.NextTxID(ctx, stx)
		if err != nil {
			return err
		}
		for i := range entries {
			entries[i].TxID = txID
		}
		return e.store.AppendEntries(ctx, stx, entries)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return txID, nil
}

func buildEntries(tx Transaction) []model.JournalEntry {
	ref := tx.Reference
	if ref == "" {
		ref = id.NewRef()
	}
	entries := make([]model.JournalEntry, len(tx.Lines))
	for i, line := range tx.Lines {
		entry := model.JournalEntry{
			Date:        tx.Date,
			AccountCode: line.AccountCode,
			Description: line.Description,
			Reference:   ref,
			ProjectCode: line.ProjectCode,
		}
		if line.Side == model.SideCredit {
			entry.Credit = line.Amount
		} else {
			entry.Debit = line.Amount
		}
		entries[i] = entry
	}
	return entries
}

func projectCodes(lines []Line) []string {
	codes := make([]string, len(lines))
	for i, line := range lines {
		codes[i] = line.ProjectCode
	}
	return codes
}
