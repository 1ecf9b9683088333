package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error)
	ListOwnOrders(ctx context.Context, owner string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
}
