//go:build pact
// +build pact

package pacttest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "houseplans-api"
	ConsumerName = "houseplans-storefront"

	StatePlanExists         = "house plan 1 exists"
	StatePendingOrderExists = "pending order 1 exists"
	StateOrderMissing       = "no order with id 999"
)

const (
	ExistingPlanID  int64 = 1
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 999
)

const (
	ExampleRedirectURL = "https://pay.example.pact/checkout/ch_1"
	ExampleOrigin      = "https://shop.example.pact"
)

// PactDir is where consumer tests write contracts and the provider test reads them.
func PactDir(t testing.TB) string {
	return ensureDir(t, "pacts")
}

// PactFile is the storefront contract produced by the consumer suite.
func PactFile(t testing.TB) string {
	return filepath.Join(PactDir(t), fmt.Sprintf("%s-%s.json", ConsumerName, ProviderName))
}

// LogDir receives pact-go mock server logs.
func LogDir(t testing.TB) string {
	return ensureDir(t, filepath.Join("bin", "pact-logs"))
}

func ensureDir(t testing.TB, rel string) string {
	t.Helper()
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("pact: unable to locate source file")
	}
	// here is <root>/test/pact/pacttest.go
	dir := filepath.Join(filepath.Dir(here), "..", "..", rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("pact: mkdir %s: %v", dir, err)
	}
	return filepath.Clean(dir)
}
