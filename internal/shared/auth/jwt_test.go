package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-entropy"

func mintHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func keycloakToken(username string, roles ...string) jwt.MapClaims {
	rolesAny := make([]any, len(roles))
	for i, r := range roles {
		rolesAny[i] = r
	}
	return jwt.MapClaims{
		"sub":                "a1b2c3",
		"preferred_username": username,
		"realm_access":       map[string]any{"roles": rolesAny},
		"iss":                "http://keycloak/realms/shop",
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTAuthenticator_MapsKeycloakClaims(t *testing.T) {
	authn, err := NewJWTAuthenticator(Config{HS256Secret: testSecret, Issuer: "http://keycloak/realms/shop"})
	require.NoError(t, err)

	principal, err := authn.Authenticate(context.Background(), mintHS256(t, keycloakToken("alice", "CLIENT", "offline_access")))
	require.NoError(t, err)
	require.Equal(t, "alice", principal.Username)
	require.True(t, principal.HasRole(RoleClient))
	require.False(t, principal.HasRole(RoleAdmin))
}

func TestJWTAuthenticator_FallsBackToSubject(t *testing.T) {
	authn, err := NewJWTAuthenticator(Config{HS256Secret: testSecret})
	require.NoError(t, err)

	claims := keycloakToken("", "ADMIN")
	principal, err := authn.Authenticate(context.Background(), mintHS256(t, claims))
	require.NoError(t, err)
	require.Equal(t, "a1b2c3", principal.Username)
}

func TestJWTAuthenticator_RejectsBadTokens(t *testing.T) {
	authn, err := NewJWTAuthenticator(Config{HS256Secret: testSecret, Issuer: "http://keycloak/realms/shop"})
	require.NoError(t, err)
	ctx := context.Background()

	expired := keycloakToken("alice", "CLIENT")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	_, err = authn.Authenticate(ctx, mintHS256(t, expired))
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := keycloakToken("alice", "CLIENT")
	wrongIssuer["iss"] = "http://elsewhere"
	_, err = authn.Authenticate(ctx, mintHS256(t, wrongIssuer))
	require.ErrorIs(t, err, ErrInvalidToken)

	noExpiry := keycloakToken("alice", "CLIENT")
	delete(noExpiry, "exp")
	_, err = authn.Authenticate(ctx, mintHS256(t, noExpiry))
	require.ErrorIs(t, err, ErrInvalidToken)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, keycloakToken("mallory", "ADMIN")).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = authn.Authenticate(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = authn.Authenticate(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = authn.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestJWTAuthenticator_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	authn, err := NewJWTAuthenticator(Config{RSAPublicKeyPEM: pemBytes})
	require.NoError(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, keycloakToken("bob", "ADMIN")).SignedString(key)
	require.NoError(t, err)
	principal, err := authn.Authenticate(context.Background(), signed)
	require.NoError(t, err)
	require.Equal(t, "bob", principal.Username)
	require.True(t, principal.HasRole(RoleAdmin))

	// HS256 is not accepted when only an RSA key is configured
	_, err = authn.Authenticate(context.Background(), mintHS256(t, keycloakToken("bob", "ADMIN")))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTAuthenticator_RequiresKey(t *testing.T) {
	_, err := NewJWTAuthenticator(Config{})
	require.Error(t, err)

	_, err = NewJWTAuthenticator(Config{RSAPublicKeyPEM: []byte("garbage")})
	require.Error(t, err)
}

func TestPrincipal_RoleNormalization(t *testing.T) {
	p := Principal{Username: "carol", Roles: []string{"role_admin"}}
	require.True(t, p.HasRole("ADMIN"))
	require.True(t, p.HasAnyRole("CLIENT", "admin"))
	require.False(t, p.HasAnyRole("CLIENT"))
}
