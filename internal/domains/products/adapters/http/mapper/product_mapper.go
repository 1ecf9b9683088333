package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-shop/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-shop/internal/domains/products/domain"
)

// Produit is the wire shape of a catalog entry.
type Produit struct {
	ID            int64           `json:"id"`
	Nom           string          `json:"nom"`
	Description   string          `json:"description"`
	Prix          decimal.Decimal `json:"prix"`
	QuantiteStock int32           `json:"quantiteStock"`
}

// ProduitRequest is the create/replace payload. Every field must be present.
type ProduitRequest struct {
	Nom           *string          `json:"nom" binding:"required"`
	Description   *string          `json:"description" binding:"required"`
	Prix          *decimal.Decimal `json:"prix" binding:"required"`
	QuantiteStock *int32           `json:"quantiteStock" binding:"required"`
}

// ToMutation converts a bound request into the application input.
func ToMutation(req ProduitRequest) types.ProductMutation {
	var in types.ProductMutation
	if req.Nom != nil {
		in.Name = *req.Nom
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Prix != nil {
		in.Price = *req.Prix
	}
	if req.QuantiteStock != nil {
		in.StockQuantity = *req.QuantiteStock
	}
	return in
}

func FromDomain(p *domain.Product) Produit {
	if p == nil {
		return Produit{}
	}
	return Produit{
		ID:            p.ID,
		Nom:           p.Name,
		Description:   p.Description,
		Prix:          p.Price,
		QuantiteStock: p.StockQuantity,
	}
}

func FromDomainList(list []*domain.Product) []Produit {
	out := make([]Produit, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomain(p))
	}
	return out
}
