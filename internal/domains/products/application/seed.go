package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-shop/internal/domains/products/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/products/ports"
)

// SampleCatalog is the starter catalog inserted into an empty store.
func SampleCatalog() []domain.Product {
	return []domain.Product{
		{Name: "Laptop Dell XPS 15", Description: "Ordinateur portable haute performance avec écran 15 pouces 4K", Price: decimal.RequireFromString("1499.99"), StockQuantity: 10},
		{Name: "iPhone 15 Pro", Description: "Smartphone Apple dernière génération avec puce A17 Pro", Price: decimal.RequireFromString("1199.99"), StockQuantity: 25},
		{Name: "Samsung Galaxy S24", Description: "Smartphone Android flagship avec appareil photo 200MP", Price: decimal.RequireFromString("999.99"), StockQuantity: 15},
		{Name: "iPad Pro 12.9\"", Description: "Tablette Apple avec puce M2 et écran Liquid Retina", Price: decimal.RequireFromString("1299.99"), StockQuantity: 8},
		{Name: "Sony WH-1000XM5", Description: "Casque sans fil avec réduction de bruit active de pointe", Price: decimal.RequireFromString("399.99"), StockQuantity: 30},
		{Name: "Logitech MX Master 3S", Description: "Souris sans fil ergonomique pour professionnels", Price: decimal.RequireFromString("99.99"), StockQuantity: 50},
		{Name: "Keychron K8 Pro", Description: "Clavier mécanique sans fil programmable", Price: decimal.RequireFromString("129.99"), StockQuantity: 20},
		{Name: "LG UltraWide 34\"", Description: "Écran ultra-large incurvé 21:9 QHD", Price: decimal.RequireFromString("599.99"), StockQuantity: 12},
	}
}

// SeedCatalog inserts the sample catalog when the store holds no products.
// It returns the number of inserted products.
func SeedCatalog(ctx context.Context, repo ports.Repository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	inserted := 0
	for _, sample := range SampleCatalog() {
		product := sample
		if _, err := repo.Save(ctx, &product); err != nil {
			return inserted, fmt.Errorf("seed product %q: %w", sample.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
