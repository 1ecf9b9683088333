package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrProductNotFound means a requested product does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock means the catalog stock does not cover a line.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUpstreamUnavailable means the catalog could not be consulted.
	ErrUpstreamUnavailable = errors.New("product service unavailable")
)

// OrderCreationError explains why an order was rejected and which product
// line caused it. Reason is one of ErrProductNotFound, ErrInsufficientStock
// or ErrUpstreamUnavailable.
type OrderCreationError struct {
	Reason    error
	ProductID int64
	Requested int32
	Available int32
	Cause     error
}

func (e *OrderCreationError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrProductNotFound):
		return fmt.Sprintf("product %d not found", e.ProductID)
	case errors.Is(e.Reason, ErrInsufficientStock):
		return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
	}
	msg := fmt.Sprintf("%v: product %d", e.Reason, e.ProductID)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *OrderCreationError) Unwrap() []error {
	errs := []error{e.Reason}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeLinePrice) ||
		errors.Is(err, domain.ErrTotalMismatch) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
