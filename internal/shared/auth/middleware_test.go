package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var staticTokens = AuthenticatorFunc(func(_ context.Context, token string) (Principal, error) {
	switch token {
	case "admin":
		return Principal{Username: "root", Roles: []string{RoleAdmin}}, nil
	case "client":
		return Principal{Username: "alice", Roles: []string{RoleClient}}, nil
	case "nobody":
		return Principal{Username: "guest"}, nil
	}
	return Principal{}, ErrInvalidToken
})

func guardedRouter() *gin.Engine {
	policy := NewPolicy(
		Rule{Method: http.MethodGet, Pattern: "/health"},
		Rule{Method: http.MethodGet, Pattern: "/things/:id", Roles: []string{RoleAdmin, RoleClient}},
		Rule{Method: http.MethodDelete, Pattern: "/things/:id", Roles: []string{RoleAdmin}},
	)
	r := gin.New()
	r.Use(Guard(staticTokens, policy))
	whoami := func(c *gin.Context) {
		p, _ := PrincipalFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": p.Username, "token": BearerTokenFromContext(c.Request.Context())})
	}
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/things/:id", whoami)
	r.DELETE("/things/:id", whoami)
	r.POST("/unlisted", whoami)
	return r
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGuard_RoleMatrix(t *testing.T) {
	r := guardedRouter()

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"public route needs no token", http.MethodGet, "/health", "", http.StatusOK},
		{"missing token", http.MethodGet, "/things/1", "", http.StatusUnauthorized},
		{"invalid token", http.MethodGet, "/things/1", "bogus", http.StatusUnauthorized},
		{"client may read", http.MethodGet, "/things/1", "client", http.StatusOK},
		{"admin may read", http.MethodGet, "/things/1", "admin", http.StatusOK},
		{"client may not delete", http.MethodDelete, "/things/1", "client", http.StatusForbidden},
		{"roleless caller", http.MethodGet, "/things/1", "nobody", http.StatusForbidden},
		{"admin may delete", http.MethodDelete, "/things/1", "admin", http.StatusOK},
		{"route without rule is refused", http.MethodPost, "/unlisted", "admin", http.StatusForbidden},
		{"unknown path falls through", http.MethodGet, "/missing", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(r, tc.method, tc.path, tc.token)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestGuard_ProblemBodiesAndContext(t *testing.T) {
	r := guardedRouter()

	rec := perform(r, http.MethodGet, "/things/1", "")
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "/problems/unauthorized", problem["type"])
	require.Equal(t, float64(http.StatusUnauthorized), problem["status"])

	rec = perform(r, http.MethodDelete, "/things/1", "client")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "/problems/forbidden", problem["type"])

	rec = perform(r, http.MethodGet, "/things/1", "client")
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "alice", body["user"])
	require.Equal(t, "client", body["token"])
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc")
	require.True(t, ok)
	require.Equal(t, "abc", token)

	_, ok = bearerToken("Basic dXNlcjpwYXNz")
	require.False(t, ok)
	_, ok = bearerToken("Bearer ")
	require.False(t, ok)
}

func TestForwardOrStatic(t *testing.T) {
	source := ForwardOrStatic("service-token")
	require.Equal(t, "service-token", source(context.Background()))
	require.Equal(t, "caller", source(WithBearerToken(context.Background(), "caller")))
}
