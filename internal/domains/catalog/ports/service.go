package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to the CLI.
type Service interface {
	Products(ctx context.Context, query string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Deals(ctx context.Context) ([]domain.Deal, error)
	Health(ctx context.Context) (string, error)
	About(ctx context.Context) (domain.About, error)
}
