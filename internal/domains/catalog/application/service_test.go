package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-water-storefront/internal/domains/catalog/adapters/demo"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

type stubGateway struct {
	demo.Gateway
	productsErr error
	aboutErr    error
	aboutCalls  atomic.Int32
}

func (s *stubGateway) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return demo.NewGateway().ListProducts(ctx, query)
}

func (s *stubGateway) AboutPage(ctx context.Context) (domain.AboutPage, error) {
	s.aboutCalls.Add(1)
	if s.aboutErr != nil {
		return domain.AboutPage{}, s.aboutErr
	}
	return domain.AboutPage{MissionStatement: "hydrate"}, nil
}

func TestProductsFiltersByQuery(t *testing.T) {
	svc := NewService(&stubGateway{})
	products, err := svc.Products(context.Background(), "  alkaline ")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "3", products[0].ID)

	all, err := svc.Products(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 6)
}

func TestProductsPassesHTTPErrorThrough(t *testing.T) {
	svc := NewService(&stubGateway{productsErr: &sharederrors.HTTPError{StatusCode: 503}})
	_, err := svc.Products(context.Background(), "")
	require.Equal(t, 503, sharederrors.StatusCode(err))
	require.EqualError(t, err, "HTTP 503")
}

func TestProductLookup(t *testing.T) {
	svc := NewService(&stubGateway{})
	p, err := svc.Product(context.Background(), "4")
	require.NoError(t, err)
	require.Equal(t, "149.99", p.Price.String())
	require.Equal(t, "Water Dispenser", p.Ref().Name)

	_, err = svc.Product(context.Background(), "404")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAboutMergesBothHalves(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw)
	about, err := svc.About(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hydrate", about.MissionStatement)
	require.Equal(t, "Water Delivery", about.SiteName)

	gw.aboutErr = errors.New("boom")
	_, err = svc.About(context.Background())
	require.EqualError(t, err, "boom")
	require.Equal(t, int32(2), gw.aboutCalls.Load())
}
