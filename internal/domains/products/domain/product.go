package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName      = errors.New("product name is required")
	ErrNegativePrice  = errors.New("product price must not be negative")
	ErrNegativeStock  = errors.New("product stock quantity must not be negative")
	ErrPricePrecision = errors.New("product price must have at most two decimal places")
)

// PricePlaces is the scale prices are stored with (numeric(12,2)).
const PricePlaces = 2

// Product is a catalog entry. Stock is informational for order placement;
// nothing outside the catalog decrements it.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int32
}

// NewProduct validates and constructs a catalog entry without an identifier.
func NewProduct(name, description string, price decimal.Decimal, stock int32) (*Product, error) {
	p := &Product{
		Name:          strings.TrimSpace(name),
		Description:   description,
		Price:         price,
		StockQuantity: stock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !p.Price.Equal(p.Price.Round(PricePlaces)) {
		return ErrPricePrecision
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Replace overwrites every mutable attribute, keeping the identifier.
func (p *Product) Replace(name, description string, price decimal.Decimal, stock int32) error {
	next := Product{
		ID:            p.ID,
		Name:          strings.TrimSpace(name),
		Description:   description,
		Price:         price,
		StockQuantity: stock,
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}
