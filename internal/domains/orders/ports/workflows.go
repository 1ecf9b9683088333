package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement, either inline or on a durable
// workflow engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error)
}
