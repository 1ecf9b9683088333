package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config selects how tokens are verified. At least one key must be set.
type Config struct {
	HS256Secret     string
	RSAPublicKeyPEM []byte
	Issuer          string
	Audience        string
}

// JWTAuthenticator verifies Keycloak-style access tokens.
type JWTAuthenticator struct {
	parser    *jwt.Parser
	secret    []byte
	publicKey *rsa.PublicKey
}

type keycloakClaims struct {
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

func NewJWTAuthenticator(cfg Config) (*JWTAuthenticator, error) {
	a := &JWTAuthenticator{}
	var methods []string
	if secret := strings.TrimSpace(cfg.HS256Secret); secret != "" {
		a.secret = []byte(secret)
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if len(cfg.RSAPublicKeyPEM) > 0 {
		key, err := jwt.ParseRSAPublicKeyFromPEM(cfg.RSAPublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		a.publicKey = key
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	if len(methods) == 0 {
		return nil, errors.New("no token verification key configured")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	a.parser = jwt.NewParser(opts...)
	return a, nil
}

// Authenticate maps preferred_username (falling back to sub) to the
// identity and realm_access.roles to the roles.
func (a *JWTAuthenticator) Authenticate(_ context.Context, raw string) (Principal, error) {
	if strings.TrimSpace(raw) == "" {
		return Principal{}, ErrMissingToken
	}
	claims := &keycloakClaims{}
	if _, err := a.parser.ParseWithClaims(raw, claims, a.key); err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	username := strings.TrimSpace(claims.PreferredUsername)
	if username == "" {
		username = strings.TrimSpace(claims.Subject)
	}
	if username == "" {
		return Principal{}, fmt.Errorf("%w: token carries no identity", ErrInvalidToken)
	}
	return Principal{Username: username, Roles: claims.RealmAccess.Roles}, nil
}

func (a *JWTAuthenticator) key(token *jwt.Token) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if a.secret != nil {
			return a.secret, nil
		}
	case *jwt.SigningMethodRSA:
		if a.publicKey != nil {
			return a.publicKey, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
}

var _ Authenticator = (*JWTAuthenticator)(nil)
