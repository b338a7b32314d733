package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	checkoutdomain "github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
)

const tracerName = "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/observability/service"

// Service decorates checkout with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core checkout service.
func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, req checkoutdomain.Request) (checkoutdomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Checkout", trace.WithAttributes(attribute.String("checkout.payment_method", req.PaymentMethod)))
	defer span.End()
	receipt, err := s.inner.Checkout(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.recordFailure(ctx, failureStage(err))
		s.logger.LogAttrs(ctx, slog.LevelError, "checkout failed",
			slog.String("payment_method", req.PaymentMethod),
			slog.String("error", err.Error()))
		return receipt, err
	}
	span.SetAttributes(attribute.String("order.id", receipt.OrderID), attribute.Int64("order.total_cents", int64(receipt.Total)))
	s.metrics.recordPlaced(ctx)
	if receipt.Paid {
		s.metrics.recordPaid(ctx)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.String("order_id", receipt.OrderID),
		slog.String("total", receipt.Total.String()),
		slog.String("payment_method", string(receipt.PaymentMethod)),
		slog.Bool("paid", receipt.Paid))
	return receipt, nil
}

func failureStage(err error) string {
	switch {
	case errors.Is(err, checkoutports.ErrPaymentFailed):
		return "payment"
	case errors.Is(err, checkoutports.ErrOrderFailed):
		return "order"
	default:
		return "validation"
	}
}

type serviceMetrics struct {
	ordersPlaced      metric.Int64Counter
	paymentsConfirmed metric.Int64Counter
	failures          metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("checkout.service.orders_placed", metric.WithDescription("Number of orders placed"))
	paid, _ := m.Int64Counter("checkout.service.payments_confirmed", metric.WithDescription("Number of card payments confirmed"))
	failures, _ := m.Int64Counter("checkout.service.failures", metric.WithDescription("Number of failed checkouts by stage"))
	return serviceMetrics{ordersPlaced: placed, paymentsConfirmed: paid, failures: failures}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPaid(ctx context.Context) {
	if m.paymentsConfirmed != nil {
		m.paymentsConfirmed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, stage string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	}
}

var _ checkoutports.Service = (*Service)(nil)
