//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	produitclient "github.com/Apurer/go-gin-shop/internal/clients/http/produit"
	pacttest "github.com/Apurer/go-gin-shop/test/pact"
)

func TestCommandeConsumesProduit(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleProduit()
	produitMatcher := matchers.Map{
		"id":            matchers.Like(example["id"]),
		"nom":           matchers.Like(example["nom"]),
		"description":   matchers.Like(example["description"]),
		"prix":          matchers.Like(example["prix"]),
		"quantiteStock": matchers.Like(example["quantiteStock"]),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearer := matchers.Regex("Bearer "+pacttest.BearerToken, "Bearer .+")

	pact.AddInteraction().
		Given(pacttest.StateProduitExists).
		UponReceiving("a lookup of an existing produit").
		WithRequest("GET", fmt.Sprintf("/api/produits/%d", pacttest.ExistingProduitID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(produitMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProduitMissing).
		UponReceiving("a lookup of a missing produit").
		WithRequest("GET", fmt.Sprintf("/api/produits/%d", pacttest.MissingProduitID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := produitclient.NewClient(
			fmt.Sprintf("http://%s:%d", host, config.Port),
			produitclient.WithRetries(0, 0, 0),
			produitclient.WithTokenSource(func(context.Context) string { return pacttest.BearerToken }),
		)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, pacttest.ExistingProduitID)
		if err != nil {
			return fmt.Errorf("get produit: %w", err)
		}
		if product.ID != pacttest.ExistingProduitID || !product.Prix.Equal(decimal.RequireFromString("1499.99")) {
			return fmt.Errorf("unexpected produit %+v", product)
		}

		if _, err := client.GetProduct(ctx, pacttest.MissingProduitID); !errors.Is(err, produitclient.ErrNotFound) {
			return fmt.Errorf("expected not found for produit %d, got %v", pacttest.MissingProduitID, err)
		}
		return nil
	})
	require.NoError(t, err)
}
