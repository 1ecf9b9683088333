package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/http/mapper"
	productports "github.com/Apurer/go-gin-shop/internal/domains/products/ports"
)

// ProduitAPI wires HTTP transport to the catalog service.
type ProduitAPI struct {
	service productports.Service
}

func NewProduitAPI(service productports.Service) ProduitAPI {
	return ProduitAPI{service: service}
}

// Post /api/produits
func (api *ProduitAPI) CreateProduit(c *gin.Context) {
	var payload producthttpmapper.ProduitRequest
	if !bindJSON(c, &payload) {
		return
	}
	created, err := api.service.CreateProduct(c.Request.Context(), producthttpmapper.ToMutation(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(created))
}

// Get /api/produits
func (api *ProduitAPI) ListProduits(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainList(products))
}

// Get /api/produits/:id
func (api *ProduitAPI) GetProduit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(product))
}

// Put /api/produits/:id
// Replaces every field of the product.
func (api *ProduitAPI) UpdateProduit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload producthttpmapper.ProduitRequest
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), id, producthttpmapper.ToMutation(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(updated))
}

// Delete /api/produits/:id
// Deleting an unknown id still answers 204.
func (api *ProduitAPI) DeleteProduit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
