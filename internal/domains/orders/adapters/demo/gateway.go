package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// StateKey is where orders placed in demo mode live in the session store.
const StateKey = "demo:orders"

// Store is the slice of the session store the gateway persists into.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Option func(*Gateway)

// WithStore keeps recorded orders in store so later processes list them.
func WithStore(store Store) Option {
	return func(g *Gateway) { g.store = store }
}

// Gateway serves fixture orders plus anything recorded in demo mode.
type Gateway struct {
	mu       sync.Mutex
	store    Store
	recorded []domain.Order
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	if token == "" {
		return nil, &sharederrors.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Not authenticated"}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(g.recorded)+3)
	out = append(out, g.recorded...)
	return append(out, Orders()...), nil
}

// Record prepends a newly placed order so it shows up in the history.
func (g *Gateway) Record(ctx context.Context, o domain.Order) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return err
	}
	g.recorded = append([]domain.Order{o}, g.recorded...)
	if g.store == nil {
		return nil
	}
	raw, err := json.Marshal(g.recorded)
	if err != nil {
		return fmt.Errorf("encode demo orders: %w", err)
	}
	if err := g.store.Set(ctx, StateKey, string(raw)); err != nil {
		return fmt.Errorf("save demo orders: %w", err)
	}
	return nil
}

func (g *Gateway) load(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	raw, ok, err := g.store.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("load demo orders: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var recorded []domain.Order
	if err := json.Unmarshal([]byte(raw), &recorded); err != nil {
		return fmt.Errorf("decode demo orders: %w", err)
	}
	g.recorded = recorded
	return nil
}

// Orders returns the fixture order history.
func Orders() []domain.Order {
	return []domain.Order{
		{
			ID:       "order1",
			Customer: "1",
			Items: []domain.Item{
				{ProductID: "1", ProductName: "Pure Spring Water", Quantity: 2, UnitPrice: cartdomain.FromFloat(2.99)},
				{ProductID: "2", ProductName: "Mineral Water", Quantity: 5, UnitPrice: cartdomain.FromFloat(0.99)},
			},
			Total:         cartdomain.FromFloat(10.93),
			Status:        domain.StatusDelivered,
			Address:       "123 Main St, Karachi",
			Notes:         "Leave at door",
			PaymentMethod: "cod",
			PaymentStatus: "paid",
			CreatedAt:     ts("2024-01-15T10:30:00Z"),
			DeliveredAt:   ts("2024-01-15T14:20:00Z"),
		},
		{
			ID:       "order2",
			Customer: "1",
			Items: []domain.Item{
				{ProductID: "4", ProductName: "Water Dispenser", Quantity: 1, UnitPrice: cartdomain.FromFloat(149.99)},
			},
			Total:         cartdomain.FromFloat(149.99),
			Status:        domain.StatusEnRoute,
			Address:       "123 Main St, Karachi",
			Notes:         "Call before arriving",
			PaymentMethod: "card",
			PaymentStatus: "paid",
			CreatedAt:     ts("2024-01-20T09:15:00Z"),
			ETA:           ts("2024-01-20T16:00:00Z"),
		},
		{
			ID:       "order3",
			Customer: "1",
			Items: []domain.Item{
				{ProductID: "3", ProductName: "Alkaline Water", Quantity: 3, UnitPrice: cartdomain.FromFloat(1.49)},
			},
			Total:         cartdomain.FromFloat(4.47),
			Status:        domain.StatusPlaced,
			Address:       "123 Main St, Karachi",
			PaymentMethod: "cod",
			PaymentStatus: "pending",
			CreatedAt:     ts("2024-01-22T11:45:00Z"),
		},
	}
}

func ts(v string) *time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return &t
}

var _ ports.Gateway = (*Gateway)(nil)
