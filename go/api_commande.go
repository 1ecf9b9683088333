package shopserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
	apierrors "github.com/Apurer/go-gin-shop/internal/shared/errors"
)

// CommandeAPI wires HTTP transport to the order service. Placement goes
// through workflows when they are set.
type CommandeAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

func NewCommandeAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) CommandeAPI {
	return CommandeAPI{service: service, workflows: workflows}
}

// Post /api/commandes
// The owner is the caller. Prices, totals and any clientUsername in the
// body are ignored.
func (api *CommandeAPI) CreateCommande(c *gin.Context) {
	principal, ok := callerPrincipal(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.CommandeRequest
	if !bindJSON(c, &payload) {
		return
	}
	order, err := api.createOrder(c.Request.Context(), principal.Username, orderhttpmapper.ToRequestedLines(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

func (api *CommandeAPI) createOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, owner, lines)
	}
	return api.service.CreateOrder(ctx, owner, lines)
}

// Get /api/commandes
func (api *CommandeAPI) ListMesCommandes(c *gin.Context) {
	principal, ok := callerPrincipal(c)
	if !ok {
		return
	}
	orders, err := api.service.ListOwnOrders(c.Request.Context(), principal.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainList(orders))
}

// Get /api/commandes/all
func (api *CommandeAPI) ListToutesCommandes(c *gin.Context) {
	orders, err := api.service.ListAllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainList(orders))
}

// Get /api/commandes/:id
// Any CLIENT or ADMIN may read any order.
func (api *CommandeAPI) GetCommande(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

func callerPrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(c.Request.Context())
	if !ok || principal.Username == "" {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("no authenticated caller"))
		return auth.Principal{}, false
	}
	return principal, true
}
