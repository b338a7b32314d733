// Package fakeapi serves the storefront REST contract from memory. Tests point the storefront
// client at it through httptest; cmd/fakeapi runs it as a standalone development backend.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

const defaultServiceName = "storefront-fakeapi"

// Server is an in-memory storefront backend. All state lives behind mu.
type Server struct {
	mu sync.Mutex

	prefix      string
	serviceName string
	secret      []byte
	tokenTTL    time.Duration
	exposeReset bool
	now         func() time.Time

	accounts map[string]*account // by user id
	byEmail  map[string]string   // lowercased email -> user id
	resets   map[string]string   // reset token -> user id

	products []storefront.Product
	deals    []storefront.Deal
	about    storefront.About
	settings storefront.SiteSettings

	orders     map[string][]storefront.Order // user id -> newest first
	placements map[string]storefront.CreateOrderResponse
	tickets    map[string][]*storefront.Ticket // user id -> newest first

	failures map[string]sharederrors.ProblemDetail

	responder *sharederrors.Responder
	engine    *gin.Engine
}

type account struct {
	user storefront.User
	hash []byte
}

// Option configures the fake server.
type Option func(*Server)

// WithPrefix mounts every route under prefix instead of "/api".
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" && !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		s.prefix = prefix
	}
}

// WithSigningSecret sets the HS256 key used for bearer tokens.
func WithSigningSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

// WithTokenTTL bounds how long issued bearer tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithResetTokens echoes password reset tokens in the request response, as non-production servers do.
func WithResetTokens(expose bool) Option {
	return func(s *Server) { s.exposeReset = expose }
}

// WithProducts replaces the seeded catalog.
func WithProducts(products ...storefront.Product) Option {
	return func(s *Server) { s.products = append([]storefront.Product(nil), products...) }
}

// WithDeals replaces the seeded public deals.
func WithDeals(deals ...storefront.Deal) Option {
	return func(s *Server) { s.deals = append([]storefront.Deal(nil), deals...) }
}

// WithServiceName names the otelgin server spans.
func WithServiceName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.serviceName = name
		}
	}
}

// WithClock overrides time.Now for token issuing and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a server seeded with the default catalog and no accounts.
func New(opts ...Option) *Server {
	s := &Server{
		prefix:      storefront.DefaultPrefix,
		serviceName: defaultServiceName,
		secret:      []byte("fakeapi-dev-secret"),
		tokenTTL:    24 * time.Hour,
		now:         time.Now,
		accounts:    make(map[string]*account),
		byEmail:     make(map[string]string),
		resets:      make(map[string]string),
		products:    DefaultProducts(),
		about:       defaultAbout(),
		settings:    defaultSiteSettings(),
		orders:      make(map[string][]storefront.Order),
		placements:  make(map[string]storefront.CreateOrderResponse),
		tickets:     make(map[string][]*storefront.Ticket),
		failures:    make(map[string]sharederrors.ProblemDetail),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.responder = sharederrors.NewResponder(mapAuthError)
	s.engine = s.routes()
	return s
}

// Handler exposes the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Reset drops accounts, orders, tickets and injected failures. The catalog is kept.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*account)
	s.byEmail = make(map[string]string)
	s.resets = make(map[string]string)
	s.orders = make(map[string][]storefront.Order)
	s.placements = make(map[string]storefront.CreateOrderResponse)
	s.tickets = make(map[string][]*storefront.Ticket)
	s.failures = make(map[string]sharederrors.ProblemDetail)
}

// FailRoute makes every request to "METHOD /path" (path relative to the prefix) answer with problem.
func (s *Server) FailRoute(method, path string, problem sharederrors.ProblemDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, s.prefix+path)] = problem
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]sharederrors.ProblemDetail)
}

func (s *Server) routes() *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.TestMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(s.serviceName), s.injectFailures)

	api := router.Group(s.prefix)
	api.GET("/health", s.health)
	api.GET("/about", s.getAbout)
	api.GET("/site-settings", s.getSiteSettings)
	api.GET("/products", s.listProducts)
	api.GET("/deals/public", s.listDeals)

	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)
	api.POST("/password-resets/request", s.requestReset)
	api.POST("/password-resets/confirm", s.confirmReset)

	authed := api.Group("", s.requireAuth)
	authed.GET("/auth/me", s.me)
	authed.PATCH("/auth/me", s.updateMe)
	authed.POST("/auth/change-password", s.changePassword)
	authed.POST("/orders", s.createOrder)
	authed.GET("/orders", s.listOrders)
	authed.GET("/customer-support", s.listTickets)
	authed.POST("/customer-support", s.createTicket)
	authed.GET("/customer-support/:id", s.getTicket)
	authed.POST("/customer-support/:id/comments", s.addComment)

	router.NoRoute(func(c *gin.Context) {
		s.responder.Respond(c, sharederrors.NewNotFoundProblem("route", c.Request.Method+" "+c.Request.URL.Path))
	})
	return router
}

func (s *Server) injectFailures(c *gin.Context) {
	s.mu.Lock()
	problem, ok := s.failures[routeKey(c.Request.Method, c.FullPath())]
	s.mu.Unlock()
	if ok {
		s.responder.Abort(c, problem)
		return
	}
	c.Next()
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
