package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("caller does not own this resource")
	ErrEmptyCart    = errors.New("cart is empty")

	// ErrDuplicateInvoiceNumber is returned by the invoice repository when an
	// insert hits the invoice-number uniqueness constraint; the service draws
	// a fresh number and retries.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
)

// ValidationError marks malformed input: missing dates, non-positive
// quantities, inverted windows.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the product that failed an availability check
// and carries requested vs. available for diagnostics.
type InsufficientStockError struct {
	ProductID int32
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError marks an illegal status jump.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
