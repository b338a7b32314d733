package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
)

// Gateway reads the public storefront content.
type Gateway interface {
	ListProducts(ctx context.Context, query string) ([]domain.Product, error)
	ListDeals(ctx context.Context) ([]domain.Deal, error)
	Health(ctx context.Context) (string, error)
	AboutPage(ctx context.Context) (domain.AboutPage, error)
	SiteSettings(ctx context.Context) (domain.SiteSettings, error)
}
