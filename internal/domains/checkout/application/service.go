package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	cartports "github.com/Apurer/go-water-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	sessiondomain "github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput wraps validation failures raised before any remote call.
	ErrInvalidInput = errors.New("invalid checkout input")
)

// Session is the view of the session checkout needs.
type Session interface {
	Token() string
	User() *sessiondomain.User
}

// Service turns the cart into an order. The cart is cleared only after the order is fully placed.
type Service struct {
	cart         cartports.Service
	session      Session
	orchestrator ports.Orchestrator
	newKey       func() string
}

type Option func(*Service)

// WithKeyGenerator overrides how idempotency keys are minted.
func WithKeyGenerator(fn func() string) Option {
	return func(s *Service) { s.newKey = fn }
}

func NewService(cart cartports.Service, session Session, orchestrator ports.Orchestrator, opts ...Option) *Service {
	s := &Service{cart: cart, session: session, orchestrator: orchestrator, newKey: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.newKey == nil {
		s.newKey = uuid.NewString
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, req domain.Request) (domain.Receipt, error) {
	cmd, err := s.prepare(req)
	if err != nil {
		return domain.Receipt{}, err
	}
	receipt, err := s.orchestrator.PlaceOrder(ctx, cmd)
	if err != nil {
		return domain.Receipt{}, err
	}
	s.cart.Clear()
	return receipt, nil
}

func (s *Service) prepare(req domain.Request) (domain.Command, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Command{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyCart)
	}
	user := s.session.User()
	address := strings.TrimSpace(req.Address)
	if address == "" && user != nil {
		address = strings.TrimSpace(user.Address)
	}
	if address == "" {
		return domain.Command{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrAddressRequired)
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return domain.Command{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	token := s.session.Token()
	if token == "" {
		return domain.Command{}, ErrNotAuthenticated
	}
	return domain.Command{
		IdempotencyKey: s.newKey(),
		Token:          token,
		Lines:          domain.LinesFrom(items),
		Address:        address,
		Notes:          strings.TrimSpace(req.Notes),
		PaymentMethod:  method,
		Total:          s.cart.Total(),
	}, nil
}

var _ ports.Service = (*Service)(nil)
