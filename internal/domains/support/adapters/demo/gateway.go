package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-water-storefront/internal/domains/support/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/support/ports"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// StateKey is where demo tickets live in the session store.
const StateKey = "demo:tickets"

// Store is the slice of the session store the gateway persists into.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Option func(*Gateway)

// WithStore keeps tickets and comments in store so later processes see them.
func WithStore(store Store) Option {
	return func(g *Gateway) { g.store = store }
}

// Gateway keeps support tickets in memory, newest first.
type Gateway struct {
	mu      sync.Mutex
	store   Store
	tickets []domain.Ticket
	now     func() time.Time
}

func NewGateway(opts ...Option) *Gateway {
	created1 := time.Date(2024, 1, 22, 12, 0, 0, 0, time.UTC)
	created2 := time.Date(2024, 1, 20, 15, 30, 0, 0, time.UTC)
	g := &Gateway{
		tickets: []domain.Ticket{
			{ID: "ticket1", Title: "Delivery Delay", Description: "My order is 2 hours late", Status: domain.StatusOpen, CreatedAt: &created1},
			{ID: "ticket2", Title: "Water Quality Issue", Description: "The water taste seems off", Status: domain.StatusResolved, CreatedAt: &created2},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) ListTickets(ctx context.Context, _ string) ([]domain.Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, len(g.tickets))
	copy(out, g.tickets)
	return out, nil
}

func (g *Gateway) CreateTicket(ctx context.Context, _ string, draft domain.Draft) (domain.Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return domain.Ticket{}, err
	}
	created := g.now().UTC()
	t := domain.Ticket{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      domain.StatusOpen,
		CreatedAt:   &created,
	}
	g.tickets = append([]domain.Ticket{t}, g.tickets...)
	if err := g.save(ctx); err != nil {
		return domain.Ticket{}, err
	}
	return t, nil
}

func (g *Gateway) GetTicket(ctx context.Context, _ string, id string) (domain.Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return domain.Ticket{}, err
	}
	i := g.find(id)
	if i < 0 {
		return domain.Ticket{}, notFound()
	}
	t := g.tickets[i]
	t.Comments = append([]domain.Comment(nil), t.Comments...)
	return t, nil
}

func (g *Gateway) AddComment(ctx context.Context, _ string, id, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return err
	}
	i := g.find(id)
	if i < 0 {
		return notFound()
	}
	created := g.now().UTC()
	g.tickets[i].Comments = append(g.tickets[i].Comments, domain.Comment{
		ID:         uuid.NewString(),
		Message:    message,
		AuthorName: "Demo Customer",
		CreatedAt:  &created,
	})
	return g.save(ctx)
}

func (g *Gateway) load(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	raw, ok, err := g.store.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("load demo tickets: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		return fmt.Errorf("decode demo tickets: %w", err)
	}
	g.tickets = tickets
	return nil
}

func (g *Gateway) save(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	raw, err := json.Marshal(g.tickets)
	if err != nil {
		return fmt.Errorf("encode demo tickets: %w", err)
	}
	if err := g.store.Set(ctx, StateKey, string(raw)); err != nil {
		return fmt.Errorf("save demo tickets: %w", err)
	}
	return nil
}

func (g *Gateway) find(id string) int {
	for i, t := range g.tickets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &sharederrors.HTTPError{StatusCode: http.StatusNotFound, Message: "Ticket not found"}
}

var _ ports.Gateway = (*Gateway)(nil)
