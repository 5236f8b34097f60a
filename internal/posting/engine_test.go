package posting

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.SeedAccounts(context.Background(), []model.Account{
		{Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset},
		{Code: "1110", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{Code: "4010", Name: "Contract Revenue", Type: model.AccountTypeIncome},
		{Code: "5010", Name: "Materials", Type: model.AccountTypeExpense},
	})
	require.NoError(t, err)
	return NewEngine(st), st
}

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPost_AppendsBalancedTransaction(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	txID, err := e.Post(ctx, Transaction{
		Date: day("2026-01-15"),
		Lines: []Line{
			{AccountCode: "1010", Side: model.SideDebit, Amount: dec("1000.00"),
				Description: "advance received", ProjectCode: "P-001"},
			{AccountCode: "4010", Side: model.SideCredit, Amount: dec("1000.00"),
				Description: "advance received", ProjectCode: "P-001"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), txID)

	rows, err := st.EntriesByTx(ctx, txID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Debit.Equal(dec("1000")))
	assert.True(t, rows[1].Credit.Equal(dec("1000")))
	assert.Equal(t, rows[0].Reference, rows[1].Reference)
	assert.NotEmpty(t, rows[0].Reference)
	assert.Equal(t, "P-001", rows[0].ProjectCode)
}

func TestPost_PreservesProvidedReference(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	txID, err := e.Post(ctx, Transaction{
		Date:      day("2026-01-15"),
		Reference: "rcpt-102",
		Lines:     balancedLines("1010", "4010", "250.00"),
	})
	require.NoError(t, err)

	rows, err := st.EntriesByTx(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, "rcpt-102", rows[0].Reference)
	assert.Equal(t, "rcpt-102", rows[1].Reference)
}

func TestPost_EmptyTransaction(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Post(context.Background(), Transaction{Date: day("2026-01-15")})
	require.ErrorIs(t, err, ErrEmptyTransaction)
}

func TestPost_MissingDate(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Post(context.Background(), Transaction{
		Lines: balancedLines("1010", "4010", "10.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestPost_RejectionLeavesJournalUnchanged(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Post(ctx, Transaction{
		Date: day("2026-01-15"),
		Lines: []Line{
			{AccountCode: "1010", Side: model.SideDebit, Amount: dec("1000.00")},
			{AccountCode: "4010", Side: model.SideCredit, Amount: dec("999.99")},
		},
	})
	require.ErrorIs(t, err, ErrUnbalanced)

	_, err = e.Post(ctx, Transaction{
		Date:  day("2026-01-15"),
		Lines: balancedLines("1010", "9999", "100.00"),
	})
	require.ErrorIs(t, err, ErrUnknownAccount)

	n, err := st.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPost_ErrorCarriesAllViolations(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Post(context.Background(), Transaction{
		Date: day("2026-01-15"),
		Lines: []Line{
			{AccountCode: "9999", Side: model.SideDebit, Amount: dec("100.00")},
			{AccountCode: "4010", Side: model.SideCredit, Amount: dec("99.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAccount)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestReverse_FlipsEverySide(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	txID, err := e.Post(ctx, Transaction{
		Date: day("2026-01-15"),
		Lines: []Line{
			{AccountCode: "5010", Side: model.SideDebit, Amount: dec("400.50"),
				Description: "cement order", ProjectCode: "P-001"},
			{AccountCode: "1010", Side: model.SideCredit, Amount: dec("400.50"),
				Description: "cement order", ProjectCode: "P-001"},
		},
	})
	require.NoError(t, err)

	revID, err := e.Reverse(ctx, txID, day("2026-01-20"))
	require.NoError(t, err)
	assert.Greater(t, revID, txID)

	rev, err := st.EntriesByTx(ctx, revID)
	require.NoError(t, err)
	require.Len(t, rev, 2)
	assert.True(t, rev[0].Credit.Equal(dec("400.50")), "debit side flips to credit")
	assert.True(t, rev[1].Debit.Equal(dec("400.50")), "credit side flips to debit")
	assert.Equal(t, "reversal-of:1", rev[0].Reference)
	assert.Equal(t, day("2026-01-20"), rev[0].Date)
	assert.Equal(t, "P-001", rev[0].ProjectCode)

	// Original and reversal net to zero per account.
	all, err := st.ListEntries(ctx, store.EntryFilter{AccountCode: "5010"})
	require.NoError(t, err)
	net := dec("0")
	for _, row := range all {
		net = net.Add(row.Debit).Sub(row.Credit)
	}
	assert.True(t, net.IsZero(), "got %s", net)
}

func TestReverse_OnlyOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	txID, err := e.Post(ctx, Transaction{
		Date:  day("2026-01-15"),
		Lines: balancedLines("1010", "4010", "75.00"),
	})
	require.NoError(t, err)

	_, err = e.Reverse(ctx, txID, day("2026-01-16"))
	require.NoError(t, err)

	_, err = e.Reverse(ctx, txID, day("2026-01-17"))
	require.ErrorIs(t, err, ErrAlreadyReversed)
}

func TestReverse_UnknownTransaction(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Reverse(context.Background(), 999, day("2026-01-16"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPost_ConcurrentDisjointProjects(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	const perProject = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perProject)
	for _, project := range []string{"P-001", "P-002"} {
		project := project
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProject; i++ {
				_, err := e.Post(ctx, Transaction{
					Date: day("2026-01-15"),
					Lines: []Line{
						{AccountCode: "1010", Side: model.SideDebit, Amount: dec("10.00"),
							ProjectCode: project, Description: fmt.Sprintf("batch %d", i)},
						{AccountCode: "4010", Side: model.SideCredit, Amount: dec("10.00"),
							ProjectCode: project, Description: fmt.Sprintf("batch %d", i)},
					},
				})
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := st.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4*perProject), n)

	var distinct int64
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(DISTINCT tx_id) FROM journal`).Scan(&distinct))
	assert.Equal(t, int64(2*perProject), distinct, "every posting got its own tx id")
}

func TestPost_SameProjectSerializes(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Post(ctx, Transaction{
				Date: day("2026-02-01"),
				Lines: []Line{
					{AccountCode: "5010", Side: model.SideDebit, Amount: dec("5.00"), ProjectCode: "P-001"},
					{AccountCode: "1010", Side: model.SideCredit, Amount: dec("5.00"), ProjectCode: "P-001"},
				},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var distinct int64
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(DISTINCT tx_id) FROM journal`).Scan(&distinct))
	assert.Equal(t, int64(workers), distinct)
}
