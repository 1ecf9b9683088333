package orders

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-shop/internal/durable/temporal/activities/orders"
	"github.com/Apurer/go-gin-shop/internal/durable/temporal/sequences"
)

const (
	PlacementWorkflowName = "orders.workflows.Placement"
	// PlacementTaskQueue is consumed by commande-worker.
	PlacementTaskQueue = "ORDER_PLACEMENT"
	// PlacementExecutionTimeout covers every activity attempt plus backoff,
	// and bounds the wait when no worker polls the queue.
	PlacementExecutionTimeout = 2 * time.Minute
)

type PlacementWorkflowInput struct {
	Command orderactivities.PlacementInput
	TraceID string
}

func PlacementWorkflow(ctx workflow.Context, input PlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PlacementWorkflow started", withTraceID(input.TraceID, "owner", input.Command.Owner)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Warn("PlacementWorkflow failed", withTraceID(input.TraceID, "owner", input.Command.Owner, "error", err)...)
		return nil, err
	}
	logger.Info("PlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...any) []any {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
