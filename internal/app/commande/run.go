package commande

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	shopserver "github.com/Apurer/go-gin-shop/go"
	orderworkflows "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop/internal/platform/httpserver"
	platformobservability "github.com/Apurer/go-gin-shop/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-shop/internal/platform/temporal"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

const serviceName = "commande-api"

// Run boots the Commande API and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
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

	authn, err := auth.NewJWTAuthenticator(cfg.Auth)
	if err != nil {
		return fmt.Errorf("configure authentication: %w", err)
	}

	// the caller's token is presented to Produit, the service token only
	// when there is no caller
	stack, err := NewOrderStack(ctx, cfg.PostgresDSN, cfg.Produit, auth.ForwardOrStatic(cfg.Produit.ServiceToken), instruments)
	if err != nil {
		return err
	}
	defer stack.Close()

	var workflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(stack.Service)
	if cfg.TemporalEnabled {
		temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-client")
		if err != nil {
			logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			workflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := shopserver.NewRouterWithGinEngine(engine, authn, shopserver.CommandeRoutes(
		shopserver.NewCommandeAPI(stack.Service, workflows),
		shopserver.NewHealthAPI(stack.Checks),
	))
	return httpserver.Serve(ctx, logger, ":"+cfg.Port, router)
}
