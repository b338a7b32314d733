package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutdomain "github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	sessiondemo "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/demo"
	"github.com/Apurer/go-water-storefront/internal/domains/session/adapters/memory"
	sessionapp "github.com/Apurer/go-water-storefront/internal/domains/session/application"
	sessionports "github.com/Apurer/go-water-storefront/internal/domains/session/ports"
	"github.com/Apurer/go-water-storefront/internal/fakeapi"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

func boolPtr(v bool) *bool { return &v }

func newLiveApp(t *testing.T, cfg Config, store sessionports.Store) (*App, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	_, err := fake.AddUser("Ayesha Khan", "ayesha@example.com", "secret1")
	require.NoError(t, err)

	cfg.APIBase = srv.URL
	cfg.APIPrefix = "/api"
	cfg.Store = StoreMemory
	if cfg.Demo == nil {
		cfg.Demo = boolPtr(false)
	}
	app, err := New(context.Background(), cfg, WithStore(store), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app, fake
}

func TestStorefrontClientUsesConfiguredUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewStorefrontClient(Config{APIBase: srv.URL, APIPrefix: "/api", UserAgent: "storefront-kiosk/3"}, srv.Client())
	require.NoError(t, err)
	_, err = client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "storefront-kiosk/3", agent)

	client, err = NewStorefrontClient(Config{APIBase: srv.URL, APIPrefix: "/api"}, srv.Client())
	require.NoError(t, err)
	_, err = client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "water-storefront-client/1", agent)
}

func TestCashCheckoutAgainstAPI(t *testing.T) {
	app, fake := newLiveApp(t, Config{}, memory.NewStore())
	ctx := context.Background()

	require.NoError(t, app.Session.Restore(ctx))
	require.NoError(t, app.Session.Login(ctx, "ayesha@example.com", "secret1"))

	products, err := app.Catalog.Products(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	app.Cart.AddItem(products[0].Ref(), 2)

	receipt, err := app.Checkout.Checkout(ctx, checkoutdomain.Request{Address: "12 Canal Road", PaymentMethod: "cod"})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.OrderID)
	assert.False(t, receipt.Paid)
	assert.Zero(t, app.Cart.Count())

	history, err := app.Orders.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, receipt.OrderID, history[0].ID)
	assert.Len(t, fake.Orders("ayesha@example.com"), 1)
}

func TestCardCheckoutWithoutPaymentKeyKeepsCart(t *testing.T) {
	app, _ := newLiveApp(t, Config{}, memory.NewStore())
	ctx := context.Background()
	require.NoError(t, app.Session.Login(ctx, "ayesha@example.com", "secret1"))

	products, err := app.Catalog.Products(ctx, "")
	require.NoError(t, err)
	app.Cart.AddItem(products[0].Ref(), 1)

	_, err = app.Checkout.Checkout(ctx, checkoutdomain.Request{Address: "12 Canal Road", PaymentMethod: "card"})
	require.ErrorIs(t, err, checkoutports.ErrPaymentFailed)
	assert.Equal(t, 1, app.Cart.Count())
}

func TestCardCheckoutConfirmsPayment(t *testing.T) {
	var confirmed string
	payments := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		confirmed = r.URL.Path
		assert.Equal(t, "pk_test", r.PostForm.Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
	}))
	t.Cleanup(payments.Close)

	app, _ := newLiveApp(t, Config{PaymentAPIBase: payments.URL, PaymentPublishableKey: "pk_test"}, memory.NewStore())
	ctx := context.Background()
	require.NoError(t, app.Session.Login(ctx, "ayesha@example.com", "secret1"))
	products, err := app.Catalog.Products(ctx, "")
	require.NoError(t, err)
	app.Cart.AddItem(products[0].Ref(), 1)

	receipt, err := app.Checkout.Checkout(ctx, checkoutdomain.Request{Address: "12 Canal Road", PaymentMethod: "card"})
	require.NoError(t, err)
	assert.True(t, receipt.Paid)
	assert.Contains(t, confirmed, "/v1/payment_intents/pi_")
	assert.Zero(t, app.Cart.Count())
}

func TestOrderFailureKeepsCart(t *testing.T) {
	app, fake := newLiveApp(t, Config{}, memory.NewStore())
	ctx := context.Background()
	require.NoError(t, app.Session.Login(ctx, "ayesha@example.com", "secret1"))
	products, err := app.Catalog.Products(ctx, "")
	require.NoError(t, err)
	app.Cart.AddItem(products[0].Ref(), 1)

	fake.FailRoute(http.MethodPost, "/orders", sharederrors.ErrInternal.WithDetail("order service unavailable"))
	_, err = app.Checkout.Checkout(ctx, checkoutdomain.Request{Address: "12 Canal Road"})
	require.ErrorIs(t, err, checkoutports.ErrOrderFailed)
	assert.Equal(t, 1, app.Cart.Count())
}

func TestSessionSurvivesRestart(t *testing.T) {
	store := memory.NewStore()
	app, _ := newLiveApp(t, Config{}, store)
	ctx := context.Background()
	require.NoError(t, app.Session.Login(ctx, "ayesha@example.com", "secret1"))
	token := app.Session.Token()

	restarted, err := New(ctx, app.Config, WithStore(store))
	require.NoError(t, err)
	require.NoError(t, restarted.Session.Restore(ctx))
	assert.True(t, restarted.Session.IsAuthenticated())
	assert.Equal(t, token, restarted.Session.Token())
	assert.Equal(t, "Ayesha Khan", restarted.Session.User().Name)
}

func TestPersistedDemoFlagSelectsDemoGateways(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, sessionapp.NewPreferences(store).SetDemoMode(ctx, true))

	app, err := New(ctx, Config{Store: StoreMemory, APIBase: "http://127.0.0.1:1"}, WithStore(store))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	require.True(t, app.Demo)

	require.NoError(t, app.Session.Login(ctx, sessiondemo.DemoEmail, sessiondemo.DemoPassword))
	products, err := app.Catalog.Products(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 6)
	app.Cart.AddItem(products[0].Ref(), 3)

	receipt, err := app.Checkout.Checkout(ctx, checkoutdomain.Request{PaymentMethod: "card"})
	require.NoError(t, err)
	assert.True(t, receipt.Paid)

	history, err := app.Orders.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderID, history[0].ID)
}

func TestEnvironmentOverridesPersistedDemoFlag(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, sessionapp.NewPreferences(store).SetDemoMode(ctx, true))

	app, err := New(ctx, Config{Store: StoreMemory, APIBase: "http://127.0.0.1:1", Demo: boolPtr(false)}, WithStore(store))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	assert.False(t, app.Demo)

	err = app.Session.Login(ctx, sessiondemo.DemoEmail, sessiondemo.DemoPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sessionapp.ErrInvalidCredentials))
}
