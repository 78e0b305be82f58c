package services

import (
	"github.com/shopspring/decimal"

	"github.com/Om11042005/FITNZ/internal/domain"
)

// tierRates is the single source of truth for membership discounts.
var tierRates = map[domain.Tier]decimal.Decimal{
	domain.TierStandard: decimal.Zero,
	domain.TierBronze:   decimal.New(5, -2),
	domain.TierSilver:   decimal.New(10, -2),
	domain.TierGold:     decimal.New(15, -2),
	domain.TierStudent:  decimal.New(20, -2),
}

// adHocRate is the one-time "student" override, priced per sale and never persisted.
var adHocRate = decimal.New(20, -2)

// DiscountPolicy resolves an effective discount rate in [0, 1]. Pure; no error
// conditions: an unknown tier falls back to the Standard rate so checkout
// stays resilient to bad stored data.
type DiscountPolicy struct{}

func NewDiscountPolicy() *DiscountPolicy { return &DiscountPolicy{} }

func (DiscountPolicy) Resolve(tier domain.Tier, adHocOverride bool) decimal.Decimal {
	if adHocOverride {
		return adHocRate
	}
	if rate, ok := tierRates[tier]; ok {
		return rate
	}
	return tierRates[domain.TierStandard]
}
