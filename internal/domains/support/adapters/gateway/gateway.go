package gateway

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/domains/support/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/support/ports"
)

// Gateway implements the support port over the storefront REST client.
type Gateway struct {
	client *storefront.Client
}

func New(client *storefront.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	tickets, err := g.client.ListTickets(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicket(t))
	}
	return out, nil
}

func (g *Gateway) CreateTicket(ctx context.Context, token string, draft domain.Draft) (domain.Ticket, error) {
	if err := g.ensureClient(); err != nil {
		return domain.Ticket{}, err
	}
	t, err := g.client.CreateTicket(ctx, token, storefront.NewTicket{Title: draft.Title, Description: draft.Description})
	if err != nil {
		return domain.Ticket{}, err
	}
	return ToTicket(*t), nil
}

func (g *Gateway) GetTicket(ctx context.Context, token, id string) (domain.Ticket, error) {
	if err := g.ensureClient(); err != nil {
		return domain.Ticket{}, err
	}
	t, err := g.client.GetTicket(ctx, token, id)
	if err != nil {
		return domain.Ticket{}, err
	}
	return ToTicket(*t), nil
}

func (g *Gateway) AddComment(ctx context.Context, token, id, message string) error {
	if err := g.ensureClient(); err != nil {
		return err
	}
	return g.client.AddTicketComment(ctx, token, id, message)
}

// ToTicket converts a wire ticket into the domain shape.
func ToTicket(t storefront.Ticket) domain.Ticket {
	var comments []domain.Comment
	for _, c := range t.Comments {
		comment := domain.Comment{ID: c.ID, Message: c.Message, CreatedAt: c.CreatedAt}
		if c.Author != nil {
			comment.AuthorName = c.Author.Name
		}
		comments = append(comments, comment)
	}
	return domain.Ticket{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      domain.Status(t.Status),
		CreatedAt:   t.CreatedAt,
		Comments:    comments,
	}
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("storefront support gateway not configured")
	}
	return nil
}

var _ ports.Gateway = (*Gateway)(nil)
