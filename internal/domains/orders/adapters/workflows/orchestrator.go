package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-shop/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-shop/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// WorkflowStarter is the part of the Temporal client used to place orders.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalOrderWorkflows places orders through the placement workflow and
// waits for its result.
type TemporalOrderWorkflows struct {
	client    WorkflowStarter
	taskQueue string
}

func NewTemporalOrderWorkflows(c WorkflowStarter) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.PlacementTaskQueue}
}

func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:                       "order-placement-" + uuid.NewString(),
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: orderworkflows.PlacementExecutionTimeout,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.PlacementWorkflowName, orderworkflows.PlacementWorkflowInput{
		Command: orderactivities.PlacementInput{Owner: owner, Lines: lines},
		TraceID: traceID(ctx),
	})
	if err != nil {
		var unavailable *serviceerror.Unavailable
		if errors.As(err, &unavailable) {
			return nil, fmt.Errorf("%w: start placement workflow: %w", application.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		var timeoutErr *temporal.TimeoutError
		if errors.As(err, &timeoutErr) {
			return nil, fmt.Errorf("%w: placement workflow timed out: %w", application.ErrUpstreamUnavailable, err)
		}
		return nil, orderactivities.FromApplicationError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows calls the order service in-process.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, owner, lines)
}

func traceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
