package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	sessiondomain "github.com/Apurer/go-water-storefront/internal/domains/session/domain"
	sessionports "github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

const tracerName = "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/observability/service"

// Service decorates the session service with tracing, logging, and metrics.
// Passwords and tokens never reach a span or a log line.
type Service struct {
	inner   sessionports.Service
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

// New wraps the core session service.
func New(inner sessionports.Service, opts ...Option) sessionports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Restore(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.Restore")
	defer span.End()
	err := s.inner.Restore(ctx)
	span.SetAttributes(attribute.Bool("session.authenticated", s.inner.IsAuthenticated()))
	return err
}

func (s *Service) Login(ctx context.Context, email, password string) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.Login", trace.WithAttributes(attribute.String("user.email", email)))
	defer span.End()
	if err := s.inner.Login(ctx, email, password); err != nil {
		return s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx)
	s.logInfo(ctx, "logged in", slog.String("email", email))
	return nil
}

func (s *Service) Register(ctx context.Context, reg sessiondomain.Registration) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.Register", trace.WithAttributes(attribute.String("user.email", reg.Email)))
	defer span.End()
	if err := s.inner.Register(ctx, reg); err != nil {
		return s.handleError(ctx, span, err, "registration failed", slog.String("email", reg.Email))
	}
	s.metrics.recordRegistration(ctx)
	s.logInfo(ctx, "registered", slog.String("email", reg.Email))
	return nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) (sessiondomain.ResetAck, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.RequestPasswordReset", trace.WithAttributes(attribute.String("user.email", email)))
	defer span.End()
	ack, err := s.inner.RequestPasswordReset(ctx, email)
	if err != nil {
		return ack, s.handleError(ctx, span, err, "password reset request failed", slog.String("email", email))
	}
	s.logInfo(ctx, "password reset requested", slog.String("email", email))
	return ack, nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.ConfirmPasswordReset")
	defer span.End()
	if err := s.inner.ConfirmPasswordReset(ctx, token, password); err != nil {
		return s.handleError(ctx, span, err, "password reset confirmation failed")
	}
	s.logInfo(ctx, "password reset confirmed")
	return nil
}

func (s *Service) FetchMe(ctx context.Context) (*sessiondomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.FetchMe")
	defer span.End()
	user, err := s.inner.FetchMe(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile")
	}
	return user, nil
}

func (s *Service) UpdateMe(ctx context.Context, patch sessiondomain.ProfilePatch) (*sessiondomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.UpdateMe")
	defer span.End()
	user, err := s.inner.UpdateMe(ctx, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update profile")
	}
	s.metrics.recordProfileUpdate(ctx)
	s.logInfo(ctx, "profile updated", slog.String("user_id", user.ID))
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.ChangePassword")
	defer span.End()
	if err := s.inner.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		return s.handleError(ctx, span, err, "failed to change password")
	}
	s.logInfo(ctx, "password changed")
	return nil
}

func (s *Service) Logout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.Logout")
	defer span.End()
	err := s.inner.Logout(ctx)
	s.metrics.recordLogout(ctx)
	s.logInfo(ctx, "logged out")
	return err
}

func (s *Service) Snapshot() sessiondomain.Snapshot { return s.inner.Snapshot() }
func (s *Service) Token() string                    { return s.inner.Token() }
func (s *Service) User() *sessiondomain.User        { return s.inner.User() }
func (s *Service) IsAuthenticated() bool            { return s.inner.IsAuthenticated() }
func (s *Service) Loading() bool                    { return s.inner.Loading() }

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	logins         metric.Int64Counter
	registrations  metric.Int64Counter
	logouts        metric.Int64Counter
	profileUpdates metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("session.service.logins", metric.WithDescription("Number of successful logins"))
	registrations, _ := m.Int64Counter("session.service.registrations", metric.WithDescription("Number of accounts registered"))
	logouts, _ := m.Int64Counter("session.service.logouts", metric.WithDescription("Number of logouts"))
	updates, _ := m.Int64Counter("session.service.profile_updates", metric.WithDescription("Number of profile updates"))
	return serviceMetrics{logins: logins, registrations: registrations, logouts: logouts, profileUpdates: updates}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRegistration(ctx context.Context) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogout(ctx context.Context) {
	if m.logouts != nil {
		m.logouts.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordProfileUpdate(ctx context.Context) {
	if m.profileUpdates != nil {
		m.profileUpdates.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ sessionports.Service = (*Service)(nil)
