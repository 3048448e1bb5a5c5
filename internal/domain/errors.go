package domain

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidCustomer = errors.New("customer id is required")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidItem     = errors.New("each item must have a product id, a positive quantity and a positive unit price")
	ErrTotalMismatch   = errors.New("total amount does not match sum of items")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidMethod   = errors.New("payment method is not supported")
)

// State errors.
var (
	ErrNotFound              = errors.New("product not found in inventory")
	ErrInsufficientAvailable = errors.New("insufficient available quantity")
	ErrInsufficientReserved  = errors.New("insufficient reserved quantity to release")
	ErrNegativeQuantity      = errors.New("adjustment would make quantity negative")
	ErrOrderNotFound         = errors.New("order not found")
	ErrAmountMismatch        = errors.New("payment amount does not match the order total")
	ErrTransactionNotFound   = errors.New("payment transaction not found")
	ErrStatusConflict        = errors.New("order status was changed concurrently")
)

// ItemError ties an inventory failure to the product that caused it.
type ItemError struct {
	ProductID string
	Err       error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("product %s: %v", e.ProductID, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// NewItemError wraps err with the product it applies to.
func NewItemError(productID string, err error) error {
	return &ItemError{ProductID: productID, Err: err}
}

// IsValidation reports whether err is caused by malformed input rather than state.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidCustomer, ErrEmptyOrder, ErrInvalidItem, ErrTotalMismatch,
		ErrInvalidStatus, ErrInvalidQuantity, ErrInvalidMethod,
		ErrAmountMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the addressed entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsConflict reports whether err is a state conflict with the stored data.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInsufficientAvailable) ||
		errors.Is(err, ErrInsufficientReserved) ||
		errors.Is(err, ErrNegativeQuantity) ||
		errors.Is(err, ErrStatusConflict)
}
