package demo

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/ports"
)

// Gateway serves the fixture catalog.
type Gateway struct {
	products []domain.Product
}

func NewGateway() *Gateway {
	return &Gateway{products: Products()}
}

func (g *Gateway) ListProducts(_ context.Context, query string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(g.products))
	for _, p := range g.products {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *Gateway) ListDeals(context.Context) ([]domain.Deal, error) {
	return []domain.Deal{}, nil
}

func (g *Gateway) Health(context.Context) (string, error) {
	return "demo", nil
}

func (g *Gateway) AboutPage(context.Context) (domain.AboutPage, error) {
	return domain.AboutPage{
		MissionStatement: "Clean drinking water delivered to your door.",
	}, nil
}

func (g *Gateway) SiteSettings(context.Context) (domain.SiteSettings, error) {
	return domain.SiteSettings{SiteName: "Water Delivery", Address: "123 Main St, Karachi"}, nil
}

var _ ports.Gateway = (*Gateway)(nil)
