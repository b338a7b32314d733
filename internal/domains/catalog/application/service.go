package application

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/ports"
)

// ErrProductNotFound is returned when an id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Service serves the browse, deals, home and about screens.
type Service struct {
	gateway ports.Gateway
}

func NewService(gateway ports.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Products lists the catalog. Remote errors are returned unchanged.
func (s *Service) Products(ctx context.Context, query string) ([]domain.Product, error) {
	return s.gateway.ListProducts(ctx, strings.TrimSpace(query))
}

// Product finds one product by id in the full catalog.
func (s *Service) Product(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	products, err := s.gateway.ListProducts(ctx, "")
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (s *Service) Deals(ctx context.Context) ([]domain.Deal, error) {
	return s.gateway.ListDeals(ctx)
}

func (s *Service) Health(ctx context.Context) (string, error) {
	return s.gateway.Health(ctx)
}

// About loads the about page and the site settings concurrently.
func (s *Service) About(ctx context.Context) (domain.About, error) {
	var (
		page     domain.AboutPage
		settings domain.SiteSettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.gateway.AboutPage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.gateway.SiteSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.About{}, err
	}
	return domain.Merge(page, settings), nil
}

var _ ports.Service = (*Service)(nil)
