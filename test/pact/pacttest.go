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
	ProviderName = "storefront-api"
	ConsumerName = "storefront-cli"

	StateCatalogBaseline = "catalog baseline"
	StateCustomerExists  = "customer ayesha exists"
	StateCustomerOrdered = "customer ayesha has an order"
)

const (
	CustomerName     = "Ayesha Khan"
	CustomerEmail    = "ayesha@example.com"
	CustomerPassword = "sparkling-water"
	WrongPassword    = "flat-water"

	// ContractToken is the bearer token recorded in the pact. The provider swaps it for a live one.
	ContractToken = "contract-token"

	OrderedProductID = "p-19l"
	OrderAddress     = "12 Canal Road, Lahore"
	IdempotencyKey   = "7c1d3a52-6b8e-4f0e-9d2a-3f5c2e1b4a77"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront CLI consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
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
