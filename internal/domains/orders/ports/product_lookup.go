package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound means the catalog positively answered that the
	// product does not exist.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrLookupFailed covers transport errors, timeouts, and unexpected
	// catalog answers.
	ErrLookupFailed = errors.New("product lookup failed")
)

// ProductSnapshot is the catalog state of a product at call time. It is not
// a reservation.
type ProductSnapshot struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int32
}

// ProductLookup fetches a product from the catalog service.
type ProductLookup interface {
	Lookup(ctx context.Context, productID int64) (*ProductSnapshot, error)
}
