package produit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	shopserver "github.com/Apurer/go-gin-shop/go"
	productsmemory "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/observability"
	productspostgres "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/Apurer/go-gin-shop/internal/domains/products/application"
	productports "github.com/Apurer/go-gin-shop/internal/domains/products/ports"
	"github.com/Apurer/go-gin-shop/internal/platform/httpserver"
	"github.com/Apurer/go-gin-shop/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

const serviceName = "produit-api"

// Run boots the Produit API and blocks until ctx ends.
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

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, logger, cfg.PostgresDSN)
	defer cleanupDB()
	repo, err := buildProductRepository(db)
	if err != nil {
		return err
	}
	if cfg.SeedCatalog {
		seeded, err := productsapp.SeedCatalog(ctx, repo)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeding finished", slog.Int("products.inserted", seeded))
	}

	service := productsobs.New(
		productsapp.NewService(repo),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)

	checks := map[string]shopserver.HealthCheck{}
	if db != nil {
		checks["db"] = pingCheck(db)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := shopserver.NewRouterWithGinEngine(engine, authn,
		shopserver.ProduitRoutes(shopserver.NewProduitAPI(service), shopserver.NewHealthAPI(checks)))

	return httpserver.Serve(ctx, logger, ":"+cfg.Port, router)
}

func buildProductRepository(db *gorm.DB) (productports.Repository, error) {
	if db == nil {
		return productsmemory.NewRepository(), nil
	}
	if err := migrations.RunCatalog(db); err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	return productspostgres.NewRepository(db), nil
}

func pingCheck(db *gorm.DB) shopserver.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
