package accounting_test

import (
	"testing"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		entryType domain.EntryType
		direction domain.RowDirection
	}{
		{domain.Receipt, domain.RowDebit},
		{domain.VoidReversal, domain.RowDebit},
		{domain.Payment, domain.RowCredit},
		{domain.Transfer, domain.RowCredit},
	}
	for _, tt := range tests {
		direction, err := accounting.Classify(tt.entryType)
		require.NoError(t, err, "type %s", tt.entryType)
		assert.Equal(t, tt.direction, direction, "type %s", tt.entryType)
	}
}

func TestClassify_Unknown(t *testing.T) {
	_, err := accounting.Classify(domain.EntryType("REFUND"))
	assert.Error(t, err)
}

func TestSignedSourceEffect(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name      string
		entryType domain.EntryType
		converted string
		charges   string
		want      string
	}{
		{"receipt without charges", domain.Receipt, "200", "0", "200"},
		{"receipt nets charges out", domain.Receipt, "200", "12.50", "187.50"},
		{"payment carries charges", domain.Payment, "150", "15", "-165"},
		{"transfer debits source", domain.Transfer, "500", "0", "-500"},
		{"void reversal credits back", domain.VoidReversal, "135", "0", "135"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, err := accounting.SignedSourceEffect(tt.entryType, d(tt.converted), d(tt.charges))
			require.NoError(t, err)
			assert.True(t, effect.Equal(d(tt.want)), "got %s, want %s", effect, tt.want)
		})
	}
}

func TestSignedSourceEffect_Unknown(t *testing.T) {
	_, err := accounting.SignedSourceEffect(domain.EntryType("REFUND"), decimal.NewFromInt(1), decimal.Zero)
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, accounting.Round(d("166.666666666666")).Equal(d("166.67")))
	assert.True(t, accounting.Round(d("166.664")).Equal(d("166.66")))
	assert.True(t, accounting.Round(d("1875")).Equal(d("1875")))
}
