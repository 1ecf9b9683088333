package shopserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReportsComponents(t *testing.T) {
	health := NewHealthAPI(map[string]HealthCheck{
		"db": func(context.Context) error { return errors.New("down") },
	})
	r := NewRouterWithGinEngine(gin.New(), testAuthenticator, []Route{
		{"Health", http.MethodGet, "/actuator/health", nil, health.Health},
	})

	rec := do(t, r, http.MethodGet, "/actuator/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[healthStatus](t, rec)
	require.Equal(t, "DOWN", body.Status)
	require.Equal(t, "DOWN", body.Components["db"])

	rec = do(t, newProduitRouter(), http.MethodGet, "/actuator/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "UP", decode[healthStatus](t, rec).Status)
}

func TestRequestID(t *testing.T) {
	r := newProduitRouter()

	rec := do(t, r, http.MethodGet, "/actuator/health", "", nil)
	require.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/actuator/health", nil)
	req.Header.Set(RequestIDHeader, "trace-me-42")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "trace-me-42", rec.Header().Get(RequestIDHeader))
}
