package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/support/domain"
)

// Gateway talks to the customer support endpoints.
type Gateway interface {
	ListTickets(ctx context.Context, token string) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, token string, draft domain.Draft) (domain.Ticket, error)
	GetTicket(ctx context.Context, token, id string) (domain.Ticket, error)
	AddComment(ctx context.Context, token, id, message string) error
}

// Service exposes the support use cases.
type Service interface {
	Tickets(ctx context.Context) ([]domain.Ticket, error)
	Open(ctx context.Context, title, description string) (domain.Ticket, error)
	Ticket(ctx context.Context, id string) (domain.Ticket, error)
	Comment(ctx context.Context, id, message string) (domain.Ticket, error)
}
