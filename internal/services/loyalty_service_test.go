package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/services"
)

func TestLoyaltyLedger_RedemptionValue(t *testing.T) {
	ledger := services.NewLoyaltyLedger()

	// 1 point = $0.10
	v, err := ledger.RedemptionValue(500, 100)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("10")), "got %s", v)

	// zero points is a valid redemption worth nothing
	v, err = ledger.RedemptionValue(500, 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	// full balance is redeemable
	v, err = ledger.RedemptionValue(42, 42)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("4.2")), "got %s", v)
}

func TestLoyaltyLedger_RedemptionOutOfRange(t *testing.T) {
	ledger := services.NewLoyaltyLedger()

	_, err := ledger.RedemptionValue(500, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidRedemption)

	_, err = ledger.RedemptionValue(500, 501)
	assert.ErrorIs(t, err, domain.ErrInvalidRedemption)
}

func TestLoyaltyLedger_EarnedPoints(t *testing.T) {
	ledger := services.NewLoyaltyLedger()

	cases := []struct {
		total string
		want  int
	}{
		{"0", 0},
		{"9.99", 0},
		{"10", 1},
		{"34.2125", 3},
		{"34.50", 3},
		{"100", 10},
		{"109.999", 10},
	}
	for _, tc := range cases {
		got := ledger.EarnedPoints(decimal.RequireFromString(tc.total))
		assert.Equal(t, tc.want, got, "total %s", tc.total)
	}
}
