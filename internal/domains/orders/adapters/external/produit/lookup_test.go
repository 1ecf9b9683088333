package produit

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	produitclient "github.com/Apurer/go-gin-shop/internal/clients/http/produit"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) GetProduct(ctx context.Context, id int64) (*produitclient.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*produitclient.Product)
	return product, args.Error(1)
}

func TestLookup_MapsProduct(t *testing.T) {
	getter := &mockGetter{}
	getter.On("GetProduct", mock.Anything, int64(3)).Return(&produitclient.Product{
		ID: 3, Nom: "Samsung Galaxy S24", Prix: decimal.RequireFromString("999.99"), QuantiteStock: 15,
	}, nil)

	snapshot, err := NewLookup(getter).Lookup(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), snapshot.ID)
	require.Equal(t, "Samsung Galaxy S24", snapshot.Name)
	require.True(t, snapshot.Price.Equal(decimal.RequireFromString("999.99")))
	require.Equal(t, int32(15), snapshot.StockQuantity)
}

func TestLookup_DistinguishesNotFoundFromFailure(t *testing.T) {
	getter := &mockGetter{}
	getter.On("GetProduct", mock.Anything, int64(404)).Return(nil, produitclient.ErrNotFound)
	getter.On("GetProduct", mock.Anything, int64(500)).Return(nil, &produitclient.StatusError{StatusCode: 500, Status: "500 Internal Server Error"})
	getter.On("GetProduct", mock.Anything, int64(1)).Return(nil, errors.New("dial tcp: connection refused"))
	lookup := NewLookup(getter)

	_, err := lookup.Lookup(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
	require.NotErrorIs(t, err, ports.ErrLookupFailed)

	_, err = lookup.Lookup(context.Background(), 500)
	require.ErrorIs(t, err, ports.ErrLookupFailed)
	var statusErr *produitclient.StatusError
	require.ErrorAs(t, err, &statusErr)

	_, err = lookup.Lookup(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrLookupFailed)
}
