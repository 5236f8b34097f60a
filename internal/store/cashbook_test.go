package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebook-dev/sitebook/internal/model"
)

func TestCashBookListOrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lines := []model.CashBookLine{
		{Date: date("2026-01-20"), ProjectCode: "P-001", Method: "bank", Debit: dec("5000")},
		{Date: date("2026-01-05"), ProjectCode: "P-001", Method: "cash", Credit: dec("320.75")},
		{Date: date("2026-01-10"), ProjectCode: "P-002", Method: "transfer", Debit: dec("900")},
	}
	for _, l := range lines {
		_, err := s.AddCashLine(ctx, l)
		require.NoError(t, err)
	}

	all, err := s.ListCashLines(ctx, CashFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, date("2026-01-05"), all[0].Date)
	assert.Equal(t, date("2026-01-20"), all[2].Date)

	p1, err := s.ListCashLines(ctx, CashFilter{ProjectCode: "P-001"})
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.True(t, p1[0].Credit.Equal(dec("320.75")))

	early, err := s.ListCashLines(ctx, CashFilter{Through: date("2026-01-10")})
	require.NoError(t, err)
	assert.Len(t, early, 2)
}
