package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-water-storefront/internal/domains/support/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/support/ports"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput signals the support form was rejected before anything was sent.
	ErrInvalidInput = errors.New("invalid support input")
)

// TokenSource supplies the current bearer token.
type TokenSource interface {
	Token() string
}

// Service serves the support list, new ticket and ticket details screens.
type Service struct {
	gateway ports.Gateway
	tokens  TokenSource
}

func NewService(gateway ports.Gateway, tokens TokenSource) *Service {
	return &Service{gateway: gateway, tokens: tokens}
}

func (s *Service) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.gateway.ListTickets(ctx, token)
}

func (s *Service) Open(ctx context.Context, title, description string) (domain.Ticket, error) {
	draft, err := domain.NewDraft(title, description)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	token, err := s.token()
	if err != nil {
		return domain.Ticket{}, err
	}
	return s.gateway.CreateTicket(ctx, token, draft)
}

func (s *Service) Ticket(ctx context.Context, id string) (domain.Ticket, error) {
	token, err := s.token()
	if err != nil {
		return domain.Ticket{}, err
	}
	return s.gateway.GetTicket(ctx, token, strings.TrimSpace(id))
}

// Comment posts a message and returns the reloaded ticket.
func (s *Service) Comment(ctx context.Context, id, message string) (domain.Ticket, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Ticket{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrMessageRequired)
	}
	token, err := s.token()
	if err != nil {
		return domain.Ticket{}, err
	}
	id = strings.TrimSpace(id)
	if err := s.gateway.AddComment(ctx, token, id, message); err != nil {
		return domain.Ticket{}, err
	}
	return s.gateway.GetTicket(ctx, token, id)
}

func (s *Service) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

var _ ports.Service = (*Service)(nil)
