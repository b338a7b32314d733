package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
)

// Gateway reads the caller's order history.
type Gateway interface {
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
}

// Service exposes order history use cases.
type Service interface {
	History(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
}
