package application

import (
	"context"

	"github.com/Apurer/go-gin-shop/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-shop/internal/domains/products/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/products/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, input types.ProductMutation) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Description, input.Price, input.StockQuantity)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

// UpdateProduct replaces all mutable attributes of an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input types.ProductMutation) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Replace(input.Name, input.Description, input.Price, input.StockQuantity); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
