package produit

import (
	"context"
	"errors"
	"fmt"

	produitclient "github.com/Apurer/go-gin-shop/internal/clients/http/produit"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

var _ ports.ProductLookup = (*Lookup)(nil)

// ProductGetter is the slice of the Produit client the lookup needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*produitclient.Product, error)
}

// Lookup adapts the Produit HTTP client to the order workflow's lookup port.
type Lookup struct {
	client ProductGetter
}

func NewLookup(client ProductGetter) *Lookup {
	return &Lookup{client: client}
}

func (l *Lookup) Lookup(ctx context.Context, productID int64) (*ports.ProductSnapshot, error) {
	if l == nil || l.client == nil {
		return nil, fmt.Errorf("%w: produit client not configured", ports.ErrLookupFailed)
	}
	product, err := l.client.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, produitclient.ErrNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrLookupFailed, err)
	}
	return &ports.ProductSnapshot{
		ID:            product.ID,
		Name:          product.Nom,
		Price:         product.Prix,
		StockQuantity: product.QuantiteStock,
	}, nil
}
