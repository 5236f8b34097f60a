package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebook-dev/sitebook/internal/model"
)

func TestDebtsRegisterFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []model.DebtOrAsset{
		{Kind: model.KindDebt, Name: "Supplier credit", ProjectCode: "P-001",
			Amount: dec("12000"), StartDate: date("2025-10-01")},
		{Kind: model.KindFixedAsset, Name: "Excavator", ProjectCode: "P-001",
			Amount: dec("85000"), StartDate: date("2025-06-15")},
		{Kind: model.KindDebt, Name: "Equipment loan", ProjectCode: "P-002",
			Amount: dec("40000"), StartDate: date("2025-12-01")},
	}
	for _, d := range records {
		_, err := s.AddDebt(ctx, d)
		require.NoError(t, err)
	}

	debts, err := s.ListDebts(ctx, DebtFilter{Kind: model.KindDebt})
	require.NoError(t, err)
	require.Len(t, debts, 2)
	assert.Equal(t, "Supplier credit", debts[0].Name)

	p1, err := s.ListDebts(ctx, DebtFilter{ProjectCode: "P-001"})
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.Equal(t, "Excavator", p1[0].Name, "older start date sorts first")
}
