package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
)

// Commande is the wire shape of an order.
type Commande struct {
	ID             int64           `json:"id"`
	DateCommande   time.Time       `json:"dateCommande"`
	Statut         string          `json:"statut"`
	MontantTotal   decimal.Decimal `json:"montantTotal"`
	ClientUsername string          `json:"clientUsername"`
	Lignes         []LigneCommande `json:"lignes"`
}

// LigneCommande is the wire shape of an order line.
type LigneCommande struct {
	ID        int64           `json:"id"`
	ProduitID int64           `json:"produitId"`
	Quantite  int32           `json:"quantite"`
	Prix      decimal.Decimal `json:"prix"`
}

// CommandeRequest is the create payload. Client-supplied identity, prices,
// and totals are not part of it and are dropped during binding.
type CommandeRequest struct {
	Lignes []LigneRequest `json:"lignes"`
}

type LigneRequest struct {
	ProduitID int64 `json:"produitId"`
	Quantite  int32 `json:"quantite"`
}

// ToRequestedLines keeps the submitted order of lines.
func ToRequestedLines(req CommandeRequest) []domain.RequestedLine {
	lines := make([]domain.RequestedLine, 0, len(req.Lignes))
	for _, l := range req.Lignes {
		lines = append(lines, domain.RequestedLine{ProductID: l.ProduitID, Quantity: l.Quantite})
	}
	return lines
}

func FromDomain(order *domain.Order) Commande {
	if order == nil {
		return Commande{}
	}
	out := Commande{
		ID:             order.ID,
		DateCommande:   order.CreatedAt,
		Statut:         string(order.Status),
		MontantTotal:   order.Total,
		ClientUsername: order.Owner,
		Lignes:         make([]LigneCommande, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		out.Lignes = append(out.Lignes, LigneCommande{
			ID:        line.ID,
			ProduitID: line.ProductID,
			Quantite:  line.Quantity,
			Prix:      line.Price,
		})
	}
	return out
}

func FromDomainList(orders []*domain.Order) []Commande {
	out := make([]Commande, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomain(order))
	}
	return out
}
