package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-shop/internal/durable/temporal/activities/orders"
)

// PlacementActivityOptions retries only what the activity leaves retryable.
var PlacementActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    5 * time.Second,
		MaximumAttempts:    3,
		NonRetryableErrorTypes: []string{
			orderactivities.ErrTypeInvalidInput,
			orderactivities.ErrTypeProductNotFound,
			orderactivities.ErrTypeInsufficientStock,
			orderactivities.ErrTypePersistenceFailed,
		},
	},
}

// RunOrderPlacementSequence places the order through a single activity.
func RunOrderPlacementSequence(ctx workflow.Context, input orderactivities.PlacementInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "owner", input.Owner)

	var order domain.Order
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, PlacementActivityOptions),
		orderactivities.PlaceOrderActivityName,
		input,
	).Get(ctx, &order)
	if err != nil {
		logger.Warn("order placement sequence failed", "owner", input.Owner, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID)
	return &order, nil
}
