package produit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetProduct_DecodesBodyAndForwardsToken(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"nom":"Keychron K8 Pro","description":"clavier","prix":129.99,"quantiteStock":20}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithTokenSource(func(context.Context) string { return "caller-token" }))
	require.NoError(t, err)

	product, err := client.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "/api/produits/7", gotPath)
	require.Equal(t, "Bearer caller-token", gotAuth)
	require.Equal(t, int64(7), product.ID)
	require.Equal(t, "Keychron K8 Pro", product.Nom)
	require.True(t, product.Prix.Equal(decimal.RequireFromString("129.99")))
	require.Equal(t, int32(20), product.QuantiteStock)
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"/problems/not-found","title":"Resource Not Found","status":404}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetProduct_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"nom":"Laptop","prix":10,"quantiteStock":1}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithRetries(2, time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)

	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)
	require.Equal(t, int32(3), calls.Load())
}

func TestGetProduct_ExhaustedRetriesReturnStatusError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"title":"Internal Server Error","detail":"db down"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithRetries(1, time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 1)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.Equal(t, "db down", statusErr.Detail)
	require.Equal(t, int32(2), calls.Load())
}

func TestGetProduct_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithRetries(3, time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 1)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	require.Equal(t, int32(1), calls.Load())
}

func TestGetProduct_HonoursContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithRetries(0, 0, 0))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.GetProduct(ctx, 1)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
}
