// Package worker runs the Temporal worker that places orders.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop/internal/app/commande"
	orderactivities "github.com/Apurer/go-gin-shop/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-shop/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-gin-shop/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-shop/internal/platform/temporal"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

const serviceName = "commande-worker"

// Run polls the placement task queue until interrupted.
func Run(ctx context.Context, cfg commande.WorkerConfig) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.Produit.ServiceToken == "" {
		logger.Warn("PRODUIT_SERVICE_TOKEN not set, catalog lookups are sent without credentials")
	}
	stack, err := commande.NewOrderStack(ctx, cfg.PostgresDSN, cfg.Produit, auth.ForwardOrStatic(cfg.Produit.ServiceToken), instruments)
	if err != nil {
		return err
	}
	defer stack.Close()

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	activities := orderactivities.NewActivities(stack.Service)
	w := worker.New(temporalClient, orderworkflows.PlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.PlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.PlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.PlacementTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(interruptOn(ctx)); err != nil {
		return fmt.Errorf("temporal worker exited: %w", err)
	}
	logger.Info("Temporal worker stopped")
	return nil
}

// interruptOn adapts ctx to the channel worker.Run waits on.
func interruptOn(ctx context.Context) <-chan interface{} {
	ch := make(chan interface{}, 1)
	go func() {
		<-ctx.Done()
		ch <- struct{}{}
	}()
	return ch
}
