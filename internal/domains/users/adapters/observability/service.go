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

	userdomain "github.com/Apurer/pet-registry/internal/domains/users/domain"
	userports "github.com/Apurer/pet-registry/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/pet-registry/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) CreateUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	var username string
	if user != nil {
		username = user.Username
	}
	ctx, span := s.tracer.Start(ctx, "UserService.CreateUser", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	result, err := s.inner.CreateUser(ctx, user)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user", slog.String("username", username))
	}
	if s.metrics.usersCreated != nil {
		s.metrics.usersCreated.Add(ctx, 1)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user created", slog.Int64("user.id", result.ID), slog.String("username", result.Username))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByID", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	user, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.Int64("user.id", id))
	}
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByUsername", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	user, err := s.inner.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("username", username))
	}
	return user, nil
}

func (s *Service) UpdateMobile(ctx context.Context, id int64, mobile string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateMobile", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	user, err := s.inner.UpdateMobile(ctx, id, mobile)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update mobile", slog.Int64("user.id", id))
	}
	if s.metrics.mobilesUpdated != nil {
		s.metrics.mobilesUpdated.Add(ctx, 1)
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()
	users, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.result.count", len(users)))
	return users, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	usersCreated   metric.Int64Counter
	mobilesUpdated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	mobiles, _ := m.Int64Counter("users.service.mobile_updated", metric.WithDescription("Number of adopter mobile updates"))
	return serviceMetrics{usersCreated: created, mobilesUpdated: mobiles}
}

var _ userports.Service = (*Service)(nil)
