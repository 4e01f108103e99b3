package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingCashBox indicates a cash invoice was submitted without a cash box reference.
var ErrMissingCashBox = errors.New("cash box reference is required for cash payment")

// ErrPaymentMismatch indicates the split payment amounts do not settle the invoice total.
var ErrPaymentMismatch = errors.New("payment allocations do not match invoice total")

// ErrNoPayment indicates a split payment was submitted with no usable allocation.
var ErrNoPayment = errors.New("no payment allocation provided")

// ErrItemSuspended indicates the item is temporarily blocked from sale.
var ErrItemSuspended = errors.New("item is suspended from sale")

// ErrItemNotFound indicates the referenced item does not exist in the catalog.
var ErrItemNotFound = errors.New("item not found")

// ErrParentNotFound indicates the parent ledger account for a sub-account
// allocation could not be resolved.
var ErrParentNotFound = errors.New("parent account not found")

// ErrInsufficientStock is the sentinel matched by errors.Is for stock gate
// failures. The concrete error is InsufficientStockError, which carries the
// requested and available quantities for display.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrPersistence wraps failures reported by the persistence layer.
var ErrPersistence = errors.New("persistence error")

// InsufficientStockError reports a sale line that would drive stock below zero
// for an item that does not allow negative balances.
type InsufficientStockError struct {
	ItemName    string
	WarehouseID string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %q in warehouse %s: requested %s, available %s",
		e.ItemName, e.WarehouseID, e.Requested.String(), e.Available.String())
}

// Is lets errors.Is(err, ErrInsufficientStock) match the typed error.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it for infrastructure failures that have no sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
