//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "produit-service"
	ConsumerName = "commande-service"

	StateProduitExists  = "produit 1 exists"
	StateProduitMissing = "produit 999 missing"
)

const (
	ExistingProduitID int64 = 1
	MissingProduitID  int64 = 999

	// BearerToken is what the consumer presents; the provider accepts any token.
	BearerToken = "pact-token"
)

// ExampleProduit is the catalog entry both sides agree on.
func ExampleProduit() map[string]any {
	return map[string]any{
		"id":            ExistingProduitID,
		"nom":           "Laptop Dell XPS 15",
		"description":   "Ordinateur portable haute performance",
		"prix":          1499.99,
		"quantiteStock": 10,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
