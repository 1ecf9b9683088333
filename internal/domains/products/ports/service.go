package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-shop/internal/domains/products/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input types.ProductMutation) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input types.ProductMutation) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
