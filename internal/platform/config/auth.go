package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

// Auth reads the token verification settings shared by both APIs.
func Auth() (auth.Config, error) {
	cfg := auth.Config{
		HS256Secret: String("AUTH_HS256_SECRET", ""),
		Issuer:      String("AUTH_ISSUER", ""),
		Audience:    String("AUTH_AUDIENCE", ""),
	}
	if path := String("AUTH_RSA_PUBLIC_KEY_FILE", ""); path != "" {
		pemBytes, err := os.ReadFile(path)
		if err != nil {
			return auth.Config{}, fmt.Errorf("AUTH_RSA_PUBLIC_KEY_FILE: %w", err)
		}
		cfg.RSAPublicKeyPEM = pemBytes
	}
	if cfg.HS256Secret == "" && len(cfg.RSAPublicKeyPEM) == 0 {
		return auth.Config{}, errors.New("one of AUTH_HS256_SECRET or AUTH_RSA_PUBLIC_KEY_FILE is required")
	}
	return cfg, nil
}
