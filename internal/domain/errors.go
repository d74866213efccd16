package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule rejections. Handlers map these to client errors; anything
// else coming out of an orchestration is a TransactionFailedError.
var (
	ErrUnitNotAllowed      = errors.New("unit is not allowed for this category")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidConversion   = errors.New("conversion factor must be greater than zero")
	ErrProductShopMismatch = errors.New("product does not belong to this shop")
	ErrNotFound            = errors.New("record not found")
	ErrConcurrencyConflict = errors.New("record was modified concurrently")
)

// InsufficientStockError reports available and requested amounts in
// base-unit terms.
type InsufficientStockError struct {
	Available  decimal.Decimal
	Requested  decimal.Decimal
	UnitSymbol string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %s %s, requested %s %s",
		e.Available.String(), e.UnitSymbol, e.Requested.String(), e.UnitSymbol)
}

// InvalidDueAmountError is returned when a due amount falls outside
// [0, total], or when a DUE payment carries no due amount.
type InvalidDueAmountError struct {
	Due    decimal.Decimal
	Total  decimal.Decimal
	Reason string
}

func (e *InvalidDueAmountError) Error() string {
	return fmt.Sprintf("invalid due amount %s against total %s: %s",
		e.Due.String(), e.Total.String(), e.Reason)
}

// TransactionFailedError wraps a persistence failure inside an atomic
// orchestration. The whole unit of work has been rolled back.
type TransactionFailedError struct {
	Err error
}

func (e *TransactionFailedError) Error() string {
	return "transaction failed: " + e.Err.Error()
}

func (e *TransactionFailedError) Unwrap() error {
	return e.Err
}

// IsBusinessError reports whether err is a validation or business-rule
// rejection, as opposed to a persistence failure.
func IsBusinessError(err error) bool {
	var insufficient *InsufficientStockError
	var invalidDue *InvalidDueAmountError
	switch {
	case errors.Is(err, ErrUnitNotAllowed),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidConversion),
		errors.Is(err, ErrProductShopMismatch),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConcurrencyConflict):
		return true
	case errors.As(err, &insufficient), errors.As(err, &invalidDue):
		return true
	}
	return false
}
