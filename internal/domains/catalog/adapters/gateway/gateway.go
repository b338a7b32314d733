package gateway

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/ports"
)

// Gateway implements the catalog port over the storefront REST client.
type Gateway struct {
	client *storefront.Client
}

func New(client *storefront.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	products, err := g.client.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, ToProduct(p))
	}
	return out, nil
}

func (g *Gateway) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	deals, err := g.client.ListDeals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		out = append(out, domain.Deal{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			StartDate:   d.StartDate,
			EndDate:     d.EndDate,
		})
	}
	return out, nil
}

func (g *Gateway) Health(ctx context.Context) (string, error) {
	if err := g.ensureClient(); err != nil {
		return "", err
	}
	h, err := g.client.Health(ctx)
	if err != nil {
		return "", err
	}
	return h.Status, nil
}

func (g *Gateway) AboutPage(ctx context.Context) (domain.AboutPage, error) {
	if err := g.ensureClient(); err != nil {
		return domain.AboutPage{}, err
	}
	a, err := g.client.About(ctx)
	if err != nil {
		return domain.AboutPage{}, err
	}
	return domain.AboutPage{
		MissionStatement: a.MissionStatement,
		VisionStatement:  a.VisionStatement,
		SocialLinks:      toLinks(a.SocialLinks),
		UsefulLinks:      toLinks(a.UsefulLinks),
	}, nil
}

func (g *Gateway) SiteSettings(ctx context.Context) (domain.SiteSettings, error) {
	if err := g.ensureClient(); err != nil {
		return domain.SiteSettings{}, err
	}
	s, err := g.client.SiteSettings(ctx)
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return domain.SiteSettings{
		SiteName:     s.SiteName,
		ContactPhone: s.ContactPhone,
		ContactEmail: s.ContactEmail,
		Address:      s.Address,
	}, nil
}

// ToProduct converts the wire product, rounding the price to cents.
func ToProduct(p storefront.Product) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SizeLiters:  p.SizeLiters,
		Price:       cartdomain.FromFloat(p.Price),
		Active:      p.Active,
		Images:      append([]string(nil), p.Images...),
		Category:    p.Category,
	}
}

func toLinks(links []storefront.Link) []domain.Link {
	if len(links) == 0 {
		return nil
	}
	out := make([]domain.Link, 0, len(links))
	for _, l := range links {
		out = append(out, domain.Link{Label: l.Label, URL: l.URL})
	}
	return out
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("storefront catalog gateway not configured")
	}
	return nil
}

var _ ports.Gateway = (*Gateway)(nil)
