package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	checkoutdomain "github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
)

type stubCheckout struct {
	receipt checkoutdomain.Receipt
	err     error
}

func (s stubCheckout) Checkout(context.Context, checkoutdomain.Request) (checkoutdomain.Receipt, error) {
	return s.receipt, s.err
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestCheckoutMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	ok := New(stubCheckout{receipt: checkoutdomain.Receipt{OrderID: "o1", Paid: true}}, WithMeter(meter))
	_, err := ok.Checkout(context.Background(), checkoutdomain.Request{PaymentMethod: "card"})
	require.NoError(t, err)

	failing := New(stubCheckout{err: fmt.Errorf("%w: %w", checkoutports.ErrPaymentFailed, errors.New("declined"))}, WithMeter(meter))
	_, err = failing.Checkout(context.Background(), checkoutdomain.Request{PaymentMethod: "card"})
	require.ErrorIs(t, err, checkoutports.ErrPaymentFailed)

	require.Equal(t, int64(1), counterTotal(t, reader, "checkout.service.orders_placed"))
	require.Equal(t, int64(1), counterTotal(t, reader, "checkout.service.payments_confirmed"))
	require.Equal(t, int64(1), counterTotal(t, reader, "checkout.service.failures"))
}
