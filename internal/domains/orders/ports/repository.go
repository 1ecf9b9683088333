package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders together with their lines. Every returned
// order carries all of its lines in their original order.
type Repository interface {
	// Save stores an order and its lines atomically and returns the
	// order with generated identifiers.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
