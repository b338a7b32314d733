// Package storefront loads configuration and wires the storefront bounded contexts into an App.
package storefront

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.temporal.io/sdk/client"

	storefrontclient "github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/clients/http/payments"
	cartapp "github.com/Apurer/go-water-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-water-storefront/internal/domains/cart/ports"
	catalogdemo "github.com/Apurer/go-water-storefront/internal/domains/catalog/adapters/demo"
	cataloggateway "github.com/Apurer/go-water-storefront/internal/domains/catalog/adapters/gateway"
	catalogapp "github.com/Apurer/go-water-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-water-storefront/internal/domains/catalog/ports"
	checkoutdemo "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/demo"
	checkoutgateway "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/gateway"
	checkoutobs "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/observability"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/payment"
	checkoutworkflows "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/Apurer/go-water-storefront/internal/domains/checkout/application"
	checkoutports "github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	ordersdemo "github.com/Apurer/go-water-storefront/internal/domains/orders/adapters/demo"
	ordersgateway "github.com/Apurer/go-water-storefront/internal/domains/orders/adapters/gateway"
	ordersapp "github.com/Apurer/go-water-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-water-storefront/internal/domains/orders/ports"
	sessiondemo "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/demo"
	sessiongateway "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/gateway"
	sessionobs "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/observability"
	sessionapp "github.com/Apurer/go-water-storefront/internal/domains/session/application"
	sessionports "github.com/Apurer/go-water-storefront/internal/domains/session/ports"
	supportdemo "github.com/Apurer/go-water-storefront/internal/domains/support/adapters/demo"
	supportgateway "github.com/Apurer/go-water-storefront/internal/domains/support/adapters/gateway"
	supportapp "github.com/Apurer/go-water-storefront/internal/domains/support/application"
	supportports "github.com/Apurer/go-water-storefront/internal/domains/support/ports"
	platformobservability "github.com/Apurer/go-water-storefront/internal/platform/observability"
)

// App is the wired storefront: one instance per process.
type App struct {
	Config      Config
	Logger      *slog.Logger
	Demo        bool
	Store       sessionports.Store
	Preferences *sessionapp.Preferences

	Session  sessionports.Service
	Cart     cartports.Service
	Catalog  catalogports.Service
	Orders   ordersports.Service
	Support  supportports.Service
	Checkout checkoutports.Service

	closers []func()
}

type options struct {
	instruments    *platformobservability.Instruments
	httpClient     *http.Client
	store          sessionports.Store
	temporalClient client.Client
}

// Option overrides a piece of the wiring, mostly for tests.
type Option func(*options)

// WithInstruments supplies the process logger, tracer and meter providers.
func WithInstruments(instruments *platformobservability.Instruments) Option {
	return func(o *options) { o.instruments = instruments }
}

// WithHTTPClient replaces the HTTP client used for the storefront and payment APIs.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// WithStore bypasses STOREFRONT_STORE and uses store for the session.
func WithStore(store sessionports.Store) Option {
	return func(o *options) { o.store = store }
}

// WithTemporalClient uses c for the checkout workflow instead of dialing TEMPORAL_ADDRESS.
// The caller keeps ownership of c.
func WithTemporalClient(c client.Client) Option {
	return func(o *options) { o.temporalClient = c }
}

// New wires every bounded context. Demo mode comes from cfg.Demo when set, else from the
// persisted flag; in demo mode no network collaborator is contacted.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if o.instruments != nil && o.instruments.Logger != nil {
		logger = o.instruments.Logger
	}
	app := &App{Config: cfg, Logger: logger}

	store := o.store
	if store == nil {
		built, closer, err := buildStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store = built
		app.closers = append(app.closers, closer)
	}
	app.Store = store
	app.Preferences = sessionapp.NewPreferences(store)

	if cfg.Demo != nil {
		app.Demo = *cfg.Demo
	} else {
		demo, err := app.Preferences.DemoMode(ctx)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("read demo preference: %w", err)
		}
		app.Demo = demo
	}

	gateways, err := app.buildGateways(cfg, o)
	if err != nil {
		app.Close()
		return nil, err
	}

	coreSession := sessionapp.NewService(gateways.auth, store, sessionapp.WithLogger(logger))
	app.Session = sessionobs.New(
		coreSession,
		sessionobs.WithLogger(logger),
		sessionobs.WithTracer(o.instruments.Tracer("internal.session.application")),
		sessionobs.WithMeter(o.instruments.Meter("internal.session.application")),
	)
	app.Cart = cartapp.NewService()
	app.Catalog = catalogapp.NewService(gateways.catalog)
	app.Orders = ordersapp.NewService(gateways.orders, app.Session)
	app.Support = supportapp.NewService(gateways.support, app.Session)

	orchestrator, err := app.buildOrchestrator(cfg, o, gateways)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Checkout = checkoutobs.New(
		checkoutapp.NewService(app.Cart, app.Session, orchestrator),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(o.instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(o.instruments.Meter("internal.checkout.application")),
	)

	logger.Debug("storefront wired",
		slog.Bool("demo", app.Demo),
		slog.String("store", string(cfg.Store)),
		slog.Bool("temporal", cfg.TemporalEnabled() && !app.Demo),
	)
	return app, nil
}

// Close releases store connections and clients the App opened itself.
func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] != nil {
			a.closers[i]()
		}
	}
	a.closers = nil
}

type gatewaySet struct {
	auth      sessionports.AuthGateway
	catalog   catalogports.Gateway
	orders    ordersports.Gateway
	support   supportports.Gateway
	checkout  checkoutports.OrderGateway
	confirmer checkoutports.PaymentConfirmer
}

func (a *App) buildGateways(cfg Config, o options) (gatewaySet, error) {
	if a.Demo {
		orders := ordersdemo.NewGateway(ordersdemo.WithStore(a.Store))
		return gatewaySet{
			auth:      sessiondemo.NewGateway(sessiondemo.WithStore(a.Store)),
			catalog:   catalogdemo.NewGateway(),
			orders:    orders,
			support:   supportdemo.NewGateway(supportdemo.WithStore(a.Store)),
			checkout:  checkoutdemo.NewGateway(orders),
			confirmer: checkoutdemo.Confirmer{},
		}, nil
	}
	api, err := NewStorefrontClient(cfg, o.httpClient)
	if err != nil {
		return gatewaySet{}, err
	}
	confirmer, err := NewPaymentConfirmer(cfg, o.httpClient)
	if err != nil {
		return gatewaySet{}, err
	}
	return gatewaySet{
		auth:      sessiongateway.New(api),
		catalog:   cataloggateway.New(api),
		orders:    ordersgateway.New(api),
		support:   supportgateway.New(api),
		checkout:  checkoutgateway.New(api),
		confirmer: confirmer,
	}, nil
}

func (a *App) buildOrchestrator(cfg Config, o options, gateways gatewaySet) (checkoutports.Orchestrator, error) {
	if a.Demo || (o.temporalClient == nil && !cfg.TemporalEnabled()) {
		return checkoutworkflows.NewInlineOrchestrator(gateways.checkout, gateways.confirmer), nil
	}
	if o.temporalClient != nil {
		return checkoutworkflows.NewTemporalOrchestrator(o.temporalClient), nil
	}
	temporalClient, err := DialTemporal(cfg, a.Logger, o.instruments)
	if err != nil {
		return nil, fmt.Errorf("connect to temporal at %s: %w", cfg.TemporalAddress, err)
	}
	a.closers = append(a.closers, temporalClient.Close)
	return checkoutworkflows.NewTemporalOrchestrator(temporalClient), nil
}

// NewStorefrontClient builds the REST client from cfg. A nil httpClient keeps the instrumented default.
func NewStorefrontClient(cfg Config, httpClient *http.Client) (*storefrontclient.Client, error) {
	opts := []storefrontclient.Option{
		storefrontclient.WithPrefix(cfg.APIPrefix),
		storefrontclient.WithTimeout(cfg.HTTPTimeout),
		storefrontclient.WithUserAgent(cfg.UserAgent),
	}
	if httpClient != nil {
		opts = append([]storefrontclient.Option{storefrontclient.WithHTTPClient(httpClient)}, opts...)
	}
	return storefrontclient.New(cfg.APIBase, opts...)
}

// NewPaymentConfirmer returns nil, nil when no publishable key is configured; card checkout then
// fails with ErrPaymentFailed instead of silently skipping confirmation.
func NewPaymentConfirmer(cfg Config, httpClient *http.Client) (checkoutports.PaymentConfirmer, error) {
	if cfg.PaymentPublishableKey == "" {
		return nil, nil
	}
	client, err := payments.NewClient(cfg.PaymentAPIBase, cfg.PaymentPublishableKey, httpClient)
	if err != nil {
		return nil, fmt.Errorf("configure payment client: %w", err)
	}
	return payment.NewConfirmer(client, cfg.PaymentMethodID), nil
}
