// Package auth establishes the caller identity from bearer tokens and
// enforces role requirements per route.
package auth

import (
	"context"
	"errors"
	"strings"
)

// Realm roles understood by the services.
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Principal is the authenticated caller.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole compares case-insensitively and tolerates the ROLE_ prefix some
// identity providers add.
func (p Principal) HasRole(role string) bool {
	want := normalizeRole(role)
	for _, r := range p.Roles {
		if normalizeRole(r) == want {
			return true
		}
	}
	return false
}

func (p Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// Authenticator verifies a raw bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

type principalKey struct{}
type tokenKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithBearerToken keeps the caller's raw token so downstream calls can
// present it.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func BearerTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// ForwardOrStatic returns the caller's token when present and the
// fallback otherwise.
func ForwardOrStatic(fallback string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		if token := BearerTokenFromContext(ctx); token != "" {
			return token
		}
		return fallback
	}
}
