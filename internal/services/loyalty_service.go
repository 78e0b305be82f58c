package services

import (
	"github.com/shopspring/decimal"

	"github.com/Om11042005/FITNZ/internal/domain"
)

// pointValue is the fixed exchange rate: 1 point = $0.10 of discount.
var pointValue = decimal.New(1, -1)

// earnStep is the earning rule: one point per whole $10 spent.
var earnStep = decimal.New(10, 0)

// LoyaltyLedger validates point redemption and computes point earning. Balance
// mutation happens only at commit time, via CustomerRepo.ApplyLoyaltyDelta
// inside the checkout transaction.
type LoyaltyLedger struct{}

func NewLoyaltyLedger() *LoyaltyLedger { return &LoyaltyLedger{} }

// RedemptionValue converts requested points to a currency value without
// touching the balance. ErrInvalidRedemption when the request is negative or
// exceeds the customer's balance.
func (LoyaltyLedger) RedemptionValue(balance, requested int) (decimal.Decimal, error) {
	if requested < 0 || requested > balance {
		return decimal.Zero, domain.ErrInvalidRedemption
	}
	return decimal.NewFromInt(int64(requested)).Mul(pointValue), nil
}

// EarnedPoints returns floor(finalTotal / 10).
func (LoyaltyLedger) EarnedPoints(finalTotal decimal.Decimal) int {
	return int(finalTotal.Div(earnStep).Floor().IntPart())
}
