package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-water-storefront/internal/domains/orders/adapters/demo"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

type failingGateway struct{ calls int }

func (f *failingGateway) ListOrders(context.Context, string) ([]domain.Order, error) {
	f.calls++
	return nil, &sharederrors.HTTPError{StatusCode: 500}
}

func TestHistoryRequiresToken(t *testing.T) {
	gw := &failingGateway{}
	svc := NewService(gw, staticToken(""))
	_, err := svc.History(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Zero(t, gw.calls)
}

func TestHistoryReturnsHTTPError(t *testing.T) {
	svc := NewService(&failingGateway{}, staticToken("tok"))
	_, err := svc.History(context.Background())
	require.Equal(t, 500, sharederrors.StatusCode(err))
}

func TestGetLooksUpHistory(t *testing.T) {
	svc := NewService(demo.NewGateway(), staticToken("tok"))

	orders, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	o, err := svc.Get(context.Background(), "order2")
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnRoute, o.Status)
	require.Equal(t, "149.99", o.Total.String())

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
