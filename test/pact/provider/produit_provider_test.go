//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	shopserver "github.com/Apurer/go-gin-shop/go"
	productsmemory "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/go-gin-shop/internal/domains/products/adapters/observability"
	productsapp "github.com/Apurer/go-gin-shop/internal/domains/products/application"
	productdomain "github.com/Apurer/go-gin-shop/internal/domains/products/domain"
	"github.com/Apurer/go-gin-shop/internal/shared/auth"
	pacttest "github.com/Apurer/go-gin-shop/test/pact"
)

func TestProduitProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	stateHandlers := models.StateHandlers{
		pacttest.StateProduitExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedExample(t)
			}
			return nil, nil
		},
		pacttest.StateProduitMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := pactprovider.NewVerifier().VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *productsmemory.Repository
	server *httptest.Server
}

// anyToken lets every bearer token through with both realm roles.
var anyToken = auth.AuthenticatorFunc(func(_ context.Context, token string) (auth.Principal, error) {
	return auth.Principal{Username: "pact", Roles: []string{auth.RoleAdmin, auth.RoleClient}}, nil
})

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := productsmemory.NewRepository()
	service := productsobs.New(productsapp.NewService(repo))
	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, anyToken,
		shopserver.ProduitRoutes(shopserver.NewProduitAPI(service), shopserver.NewHealthAPI(nil)))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &contractProviderApp{repo: repo, server: server}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	products, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, a.repo.Delete(context.Background(), p.ID))
	}
}

func (a *contractProviderApp) seedExample(t testing.TB) {
	t.Helper()
	example := pacttest.ExampleProduit()
	product, err := productdomain.NewProduct(
		example["nom"].(string),
		example["description"].(string),
		decimal.NewFromFloat(example["prix"].(float64)),
		int32(example["quantiteStock"].(int)),
	)
	require.NoError(t, err)
	product.ID = pacttest.ExistingProduitID
	_, err = a.repo.Save(context.Background(), product)
	require.NoError(t, err)
}
