package domain

import (
	"errors"
	"fmt"
)

// Validation errors: malformed or out-of-range input, detected before any
// mutation. Safe to retry after correcting the input.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("line quantity must be positive")
	ErrInvalidRedemption = errors.New("requested points out of range")
	ErrInvalidPayment    = errors.New("invalid payment details")
	ErrInvalidTier       = errors.New("unknown membership tier")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")

	// ErrLoyaltyConsistency means a committed balance update would have driven
	// the loyalty balance negative. Unreachable after RedemptionValue has
	// validated the request, but guarded rather than clamped.
	ErrLoyaltyConsistency = errors.New("loyalty balance would go negative")
)

// OutOfStockError is a conflict: the cart asked for more units than the stock
// ledger holds, either up front or because a concurrent checkout won the race.
type OutOfStockError struct {
	ProductID string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// PersistenceError wraps a storage failure during the commit step. The whole
// transaction has been rolled back by the time the caller sees one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
