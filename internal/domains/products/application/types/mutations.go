package types

import "github.com/shopspring/decimal"

// ProductMutation carries the full set of mutable catalog attributes.
// Create and update both replace every field.
type ProductMutation struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int32
}
