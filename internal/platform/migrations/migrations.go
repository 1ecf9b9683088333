package migrations

import (
	"gorm.io/gorm"

	orderspostgres "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/persistence/postgres"
	productspostgres "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/persistence/postgres"
)

// RunCatalog applies the Produit service schema.
func RunCatalog(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(productspostgres.Models()...)
}

// RunOrders applies the Commande service schema. Lines reference their
// order with ON DELETE CASCADE.
func RunOrders(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(orderspostgres.Models()...)
}
