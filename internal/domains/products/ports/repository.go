package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog entries.
type Repository interface {
	// Save inserts a new product and assigns its identifier.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// Update replaces the stored attributes, returning ErrNotFound when absent.
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Delete removes the product; deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
