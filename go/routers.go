// Package shopserver exposes the catalog and order services over HTTP.
package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

// Route is one endpoint and the roles allowed to call it. Routes without
// roles are public.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Roles       []string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(authn auth.Authenticator, routes []Route) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), authn, routes)
}

// NewRouterWithGinEngine installs request ids, access logs and the role
// guard for routes on router. Middleware already on router runs first.
func NewRouterWithGinEngine(router *gin.Engine, authn auth.Authenticator, routes []Route) *gin.Engine {
	rules := make([]auth.Rule, 0, len(routes))
	for _, route := range routes {
		rules = append(rules, auth.Rule{Method: route.Method, Pattern: route.Pattern, Roles: route.Roles})
	}
	router.Use(RequestID(), AccessLog(), auth.Guard(authn, auth.NewPolicy(rules...)))
	for _, route := range routes {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler yet.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ProduitRoutes is the Produit service surface.
func ProduitRoutes(api ProduitAPI, health HealthAPI) []Route {
	return []Route{
		{"Health", http.MethodGet, "/actuator/health", nil, health.Health},
		{"CreateProduit", http.MethodPost, "/api/produits", []string{auth.RoleAdmin}, api.CreateProduit},
		{"ListProduits", http.MethodGet, "/api/produits", []string{auth.RoleAdmin, auth.RoleClient}, api.ListProduits},
		{"GetProduit", http.MethodGet, "/api/produits/:id", []string{auth.RoleAdmin, auth.RoleClient}, api.GetProduit},
		{"UpdateProduit", http.MethodPut, "/api/produits/:id", []string{auth.RoleAdmin}, api.UpdateProduit},
		{"DeleteProduit", http.MethodDelete, "/api/produits/:id", []string{auth.RoleAdmin}, api.DeleteProduit},
	}
}

// CommandeRoutes is the Commande service surface.
func CommandeRoutes(api CommandeAPI, health HealthAPI) []Route {
	return []Route{
		{"Health", http.MethodGet, "/actuator/health", nil, health.Health},
		{"CreateCommande", http.MethodPost, "/api/commandes", []string{auth.RoleClient}, api.CreateCommande},
		{"ListMesCommandes", http.MethodGet, "/api/commandes", []string{auth.RoleClient}, api.ListMesCommandes},
		{"ListToutesCommandes", http.MethodGet, "/api/commandes/all", []string{auth.RoleAdmin}, api.ListToutesCommandes},
		{"GetCommande", http.MethodGet, "/api/commandes/:id", []string{auth.RoleClient, auth.RoleAdmin}, api.GetCommande},
	}
}
