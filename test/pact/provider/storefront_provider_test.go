//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-water-storefront/test/pact"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/fakeapi"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateCustomerExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				return nil, app.seedCustomer()
			}
			return nil, nil
		},
		pacttest.StateCustomerOrdered: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if !setup {
				return nil, nil
			}
			if err := app.seedCustomer(); err != nil {
				return nil, err
			}
			_, err := app.api.SeedOrder(pacttest.CustomerEmail, storefront.CreateOrderRequest{
				Items:         []storefront.OrderLine{{Product: pacttest.OrderedProductID, Quantity: 2}},
				Address:       pacttest.OrderAddress,
				PaymentMethod: "cod",
			})
			return nil, err
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		RequestFilter:   app.liveToken,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	api    *fakeapi.Server
	server *httptest.Server

	mu     sync.Mutex
	userID string
}

func newContractProviderApp(t *testing.T) *contractProviderApp {
	t.Helper()
	api := fakeapi.New()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return &contractProviderApp{api: api, server: server}
}

func (a *contractProviderApp) reset() {
	a.api.Reset()
	a.mu.Lock()
	a.userID = ""
	a.mu.Unlock()
}

func (a *contractProviderApp) seedCustomer() error {
	user, err := a.api.AddUser(pacttest.CustomerName, pacttest.CustomerEmail, pacttest.CustomerPassword)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.userID = user.ID
	a.mu.Unlock()
	return nil
}

// liveToken replaces the recorded bearer token with one the fake API will accept.
func (a *contractProviderApp) liveToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		userID := a.userID
		a.mu.Unlock()
		if userID != "" && strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			if token, err := a.api.IssueToken(userID); err == nil {
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		next.ServeHTTP(w, r)
	})
}
