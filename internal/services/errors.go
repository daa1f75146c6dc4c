// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/kartloop/dropship-backend/internal/database"
)

var (
	// ErrNotFound: referenced order, request, creator or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition: requested order status is not reachable from the
	// current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyProcessed: withdrawal request already resolved (or gone).
	ErrAlreadyProcessed = errors.New("withdrawal request already processed")

	// ErrInsufficientBalance: withdrawal amount exceeds the creator's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBelowMinimum: withdrawal amount below the configured floor.
	ErrBelowMinimum = errors.New("amount below minimum withdrawal")

	// ErrProfitRequired: an order can only be marked delivered together with a
	// profit figure; callers collect it and use CompleteDelivery.
	ErrProfitRequired = errors.New("profit amount required to mark order delivered")

	// ErrTransactionConflict is retried transparently by the transaction
	// wrapper; callers only see it once retries are exhausted.
	ErrTransactionConflict = database.ErrTransactionConflict
)

// SideEffectError reports a failed best-effort action (notification, email)
// after the state change itself committed. It is returned alongside the
// successful result and must never be treated as the primary failure.
type SideEffectError struct {
	Action string
	Err    error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("side effect %q failed: %v", e.Action, e.Err)
}

func (e *SideEffectError) Unwrap() error {
	return e.Err
}
