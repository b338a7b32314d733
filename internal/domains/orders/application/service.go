package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/ports"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrOrderNotFound    = errors.New("order not found")
)

// TokenSource supplies the current bearer token.
type TokenSource interface {
	Token() string
}

// Service serves the order history and order details screens.
type Service struct {
	gateway ports.Gateway
	tokens  TokenSource
}

func NewService(gateway ports.Gateway, tokens TokenSource) *Service {
	return &Service{gateway: gateway, tokens: tokens}
}

// History lists the caller's orders. Remote errors are returned unchanged.
func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return s.gateway.ListOrders(ctx, token)
}

// Get finds one order in the history.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	id = strings.TrimSpace(id)
	orders, err := s.History(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id || (len(id) >= 6 && strings.HasSuffix(o.ID, id)) {
			return o, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

var _ ports.Service = (*Service)(nil)
