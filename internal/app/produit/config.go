package produit

import (
	"github.com/Apurer/go-gin-shop/internal/platform/config"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

// Config carries environment-driven settings for produit-api.
type Config struct {
	Port        string
	PostgresDSN string
	SeedCatalog bool
	Auth        auth.Config
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        config.String("PORT", "8081"),
		PostgresDSN: config.String("POSTGRES_DSN", ""),
	}
	var err error
	if cfg.SeedCatalog, err = config.Bool("PRODUIT_SEED_CATALOG", false); err != nil {
		return Config{}, err
	}
	if cfg.Auth, err = config.Auth(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
