package commande

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	shopserver "github.com/Apurer/go-gin-shop/go"
	produitclient "github.com/Apurer/go-gin-shop/internal/clients/http/produit"
	externalproduit "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/external/produit"
	ordersmemory "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-shop/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop/internal/platform/postgres"
)

// OrderStack is the order service with its store and catalog client.
type OrderStack struct {
	Service orderports.Service
	Checks  map[string]shopserver.HealthCheck
	close   func()
}

func (s *OrderStack) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// NewOrderStack connects the order store (postgres or memory) and the
// Produit client, and wraps the service with observability.
func NewOrderStack(ctx context.Context, dsn string, produit ProduitConfig, tokens produitclient.TokenSource, instruments *platformobservability.Instruments) (*OrderStack, error) {
	logger := instruments.Logger
	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, logger, dsn)
	repo, err := buildOrderRepository(db)
	if err != nil {
		cleanupDB()
		return nil, err
	}

	client, err := produitclient.NewClient(produit.BaseURL,
		produitclient.WithTimeout(produit.Timeout),
		produitclient.WithRetries(produit.Retries, 100*time.Millisecond, time.Second),
		produitclient.WithTokenSource(tokens),
	)
	if err != nil {
		cleanupDB()
		return nil, fmt.Errorf("configure produit client: %w", err)
	}
	logger.Info("produit client configured", slog.String("produit.url", produit.BaseURL), slog.Int("produit.retries", produit.Retries))

	core := ordersapp.NewService(repo, externalproduit.NewLookup(client),
		ordersapp.WithLookupTimeout(produit.Timeout),
		ordersapp.WithLookupConcurrency(produit.Concurrency),
	)
	service := ordersobs.New(core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	checks := map[string]shopserver.HealthCheck{}
	if db != nil {
		checks["db"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return &OrderStack{Service: service, Checks: checks, close: cleanupDB}, nil
}

func buildOrderRepository(db *gorm.DB) (orderports.Repository, error) {
	if db == nil {
		return ordersmemory.NewRepository(), nil
	}
	if err := migrations.RunOrders(db); err != nil {
		return nil, fmt.Errorf("migrate order schema: %w", err)
	}
	return orderspostgres.NewRepository(db), nil
}
