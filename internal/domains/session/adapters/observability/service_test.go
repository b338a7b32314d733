package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/go-water-storefront/internal/domains/session/adapters/demo"
	"github.com/Apurer/go-water-storefront/internal/domains/session/adapters/memory"
	"github.com/Apurer/go-water-storefront/internal/domains/session/application"
)

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

func TestSessionDecoratorCountsAndRedacts(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	svc := New(application.NewService(demo.NewGateway(), memory.NewStore()), WithLogger(logger), WithMeter(meter))
	require.NoError(t, svc.Restore(ctx))

	err := svc.Login(ctx, demo.DemoEmail, "wrong-password")
	require.ErrorIs(t, err, application.ErrInvalidCredentials)
	require.NoError(t, svc.Login(ctx, demo.DemoEmail, demo.DemoPassword))
	token := svc.Token()
	require.NotEmpty(t, token)
	require.NoError(t, svc.Logout(ctx))

	require.Equal(t, int64(1), counterTotal(t, reader, "session.service.logins"))
	require.Equal(t, int64(1), counterTotal(t, reader, "session.service.logouts"))
	require.Contains(t, logs.String(), "login failed")
	require.NotContains(t, logs.String(), demo.DemoPassword)
	require.NotContains(t, logs.String(), "wrong-password")
	require.NotContains(t, logs.String(), token)
}
