package commande

import (
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop/internal/platform/config"
	platformtemporal "github.com/Apurer/go-gin-shop/internal/platform/temporal"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

// ProduitConfig describes how orders reach the catalog.
type ProduitConfig struct {
	BaseURL      string
	Timeout      time.Duration
	Retries      int
	Concurrency  int
	ServiceToken string
}

// Config carries environment-driven settings for commande-api.
type Config struct {
	Port            string
	PostgresDSN     string
	Produit         ProduitConfig
	TemporalEnabled bool
	Temporal        platformtemporal.Config
	Auth            auth.Config
}

func LoadConfig() (Config, error) {
	shared, err := LoadWorkerConfig()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:        config.String("PORT", "8082"),
		PostgresDSN: shared.PostgresDSN,
		Produit:     shared.Produit,
		Temporal:    shared.Temporal,
	}
	if cfg.TemporalEnabled, err = config.Bool("TEMPORAL_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.Auth, err = config.Auth(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WorkerConfig is the subset commande-worker needs.
type WorkerConfig struct {
	PostgresDSN string
	Produit     ProduitConfig
	Temporal    platformtemporal.Config
}

func LoadWorkerConfig() (WorkerConfig, error) {
	cfg := WorkerConfig{
		PostgresDSN: config.String("POSTGRES_DSN", ""),
		Produit: ProduitConfig{
			BaseURL:      config.String("PRODUIT_SERVICE_URL", "http://localhost:8081"),
			ServiceToken: config.String("PRODUIT_SERVICE_TOKEN", ""),
		},
		Temporal: platformtemporal.Config{
			Address:   config.String("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: config.String("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		},
	}
	var err error
	if cfg.Produit.Timeout, err = config.Duration("PRODUIT_LOOKUP_TIMEOUT", application.DefaultLookupTimeout); err != nil {
		return WorkerConfig{}, err
	}
	if cfg.Produit.Retries, err = config.Int("PRODUIT_LOOKUP_RETRIES", 2, 0); err != nil {
		return WorkerConfig{}, err
	}
	if cfg.Produit.Concurrency, err = config.Int("PRODUIT_LOOKUP_CONCURRENCY", application.DefaultLookupConcurrency, 1); err != nil {
		return WorkerConfig{}, err
	}
	return cfg, nil
}
