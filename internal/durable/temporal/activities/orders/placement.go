package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

// PlaceOrderActivityName validates, prices and persists one order.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// PlacementInput is the serialized order request.
type PlacementInput struct {
	Owner string
	Lines []domain.RequestedLine
}

type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the order service and converts its failures into
// Temporal application errors.
func (a *Activities) PlaceOrder(ctx context.Context, input PlacementInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "owner", input.Owner)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "owner", input.Owner, "lines", len(input.Lines))
	order, err := a.service.CreateOrder(ctx, input.Owner, input.Lines)
	if err != nil {
		logger.Warn("PlaceOrder activity failed", "owner", input.Owner, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "total", order.Total.String())
	return order, nil
}
