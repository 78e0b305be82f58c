package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Om11042005/FITNZ/internal/domain"
)

type PaymentCard struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"` // mm/yyyy
}

// PaymentAuthorizer confirms payment for a priced checkout. Implementations
// must respect the context deadline; the processor calls this before opening
// its transaction so a slow confirmation never holds ledger locks.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, card PaymentCard, amount decimal.Decimal) error
}

// CardAuthorizer is the local terminal implementation: it validates card
// details and accepts. Shape of the checks follows the in-store terminal
// rules (13/15/16 digit PAN, 3-4 digit CVV, unexpired mm/yyyy).
type CardAuthorizer struct {
	Now func() time.Time
}

func NewCardAuthorizer() *CardAuthorizer { return &CardAuthorizer{Now: time.Now} }

func (a *CardAuthorizer) Authorize(ctx context.Context, card PaymentCard, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pan := strings.ReplaceAll(card.Number, " ", "")
	if !digitsOnly(pan) || (len(pan) != 13 && len(pan) != 15 && len(pan) != 16) {
		return domain.ErrInvalidPayment
	}
	cvv := strings.TrimSpace(card.CVV)
	if !digitsOnly(cvv) || (len(cvv) != 3 && len(cvv) != 4) {
		return domain.ErrInvalidPayment
	}
	if !a.validExpiry(strings.TrimSpace(card.Expiry)) {
		return domain.ErrInvalidPayment
	}
	if amount.IsNegative() {
		return domain.ErrInvalidPayment
	}
	return nil
}

func (a *CardAuthorizer) validExpiry(exp string) bool {
	parts := strings.Split(exp, "/")
	if len(parts) != 2 {
		return false
	}
	mm, err1 := strconv.Atoi(parts[0])
	yyyy, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || mm < 1 || mm > 12 {
		return false
	}
	now := a.Now()
	if yyyy < now.Year() || (yyyy == now.Year() && mm < int(now.Month())) {
		return false
	}
	return true
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
