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

	pettypes "github.com/Apurer/pet-registry/internal/domains/pets/application/types"
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
)

const tracerName = "github.com/Apurer/pet-registry/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

// RegisterPet registers a pet and schedules its first doses.
func (s *Service) RegisterPet(ctx context.Context, actor int64, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterPet",
		attribute.Int64("user.id", actor),
		attribute.Int64("breed.id", input.BreedID),
	)
	defer span.End()

	s.logInfo(ctx, "registering pet", slog.Int64("user.id", actor), slog.Int64("breed.id", input.BreedID))
	result, err := s.inner.RegisterPet(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register pet", slog.Int64("user.id", actor))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordRegistered(ctx, result.Pet.Species(), len(result.PendingDoses))
		span.SetAttributes(attribute.String("pet.uuid", result.Pet.UUID), attribute.Int("pet.doses.pending", len(result.PendingDoses)))
		s.logInfo(ctx, "pet registered",
			slog.Int64("pet.id", result.Pet.ID),
			slog.String("pet.uuid", result.Pet.UUID),
			slog.Int("doses.pending", len(result.PendingDoses)),
		)
	}
	return result, nil
}

// OfferForAdoption puts a pet up for adoption.
func (s *Service) OfferForAdoption(ctx context.Context, actor int64, input pettypes.OfferForAdoptionInput) (*domain.AdoptionRecord, error) {
	ctx, span := s.startSpan(ctx, "Service.OfferForAdoption", attribute.Int64("user.id", actor), attribute.String("pet.uuid", input.UUID))
	defer span.End()

	s.logInfo(ctx, "offering pet for adoption", slog.String("pet.uuid", input.UUID))
	result, err := s.inner.OfferForAdoption(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to offer pet for adoption", slog.String("pet.uuid", input.UUID))
	}
	s.metrics.recordTransition(ctx, domain.TransitionOfferForAdoption)
	s.logInfo(ctx, "pet offered for adoption", slog.String("pet.uuid", input.UUID))
	return result, nil
}

// FinalizeAdoption completes an adoption. A notification failure still returns the adopted pet.
func (s *Service) FinalizeAdoption(ctx context.Context, actor int64, input pettypes.FinalizeAdoptionInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FinalizeAdoption", attribute.Int64("user.id", actor), attribute.String("pet.uuid", input.UUID))
	defer span.End()

	s.logInfo(ctx, "finalizing adoption", slog.String("pet.uuid", input.UUID), slog.Int64("adopter.id", actor))
	result, err := s.inner.FinalizeAdoption(ctx, actor, input)
	if result != nil && result.Pet != nil {
		s.metrics.recordTransition(ctx, domain.TransitionFinalizeAdoption)
		s.logInfo(ctx, "pet adopted", slog.Int64("pet.id", result.Pet.ID), slog.Int64("adopter.id", actor))
	}
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to finalize adoption", slog.String("pet.uuid", input.UUID))
	}
	return result, nil
}

// DeletePet removes a pet with its doses and adoption record.
func (s *Service) DeletePet(ctx context.Context, actor int64, id int64) error {
	ctx, span := s.startSpan(ctx, "Service.DeletePet", attribute.Int64("user.id", actor), attribute.Int64("pet.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting pet", slog.Int64("pet.id", id))
	if err := s.inner.DeletePet(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet", slog.Int64("pet.id", id))
	}
	s.metrics.recordTransition(ctx, domain.TransitionDelete)
	s.logInfo(ctx, "pet deleted", slog.Int64("pet.id", id))
	return nil
}

// UpdatePet edits the descriptive fields of a pet.
func (s *Service) UpdatePet(ctx context.Context, actor int64, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdatePet", attribute.Int64("user.id", actor), attribute.Int64("pet.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating pet", slog.Int64("pet.id", input.ID))
	result, err := s.inner.UpdatePet(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update pet", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordUpdated(ctx, result.Pet.Status)
		s.logInfo(ctx, "pet updated", slog.Int64("pet.id", result.Pet.ID), slog.String("status", string(result.Pet.Status)))
	}
	return result, nil
}

func (s *Service) RescheduleVaccinations(ctx context.Context, actor int64, uuid string) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.RescheduleVaccinations", attribute.Int64("user.id", actor), attribute.String("pet.uuid", uuid))
	defer span.End()

	result, err := s.inner.RescheduleVaccinations(ctx, actor, uuid)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reschedule vaccinations", slog.String("pet.uuid", uuid))
	}
	if result != nil {
		span.SetAttributes(attribute.Int("pet.doses.pending", len(result.PendingDoses)))
		s.logInfo(ctx, "vaccinations rescheduled", slog.String("pet.uuid", uuid), slog.Int("doses.pending", len(result.PendingDoses)))
	}
	return result, nil
}

func (s *Service) MarkDoseAdministered(ctx context.Context, actor int64, input pettypes.MarkDoseInput) (*vaccdomain.Dose, error) {
	ctx, span := s.startSpan(ctx, "Service.MarkDoseAdministered",
		attribute.Int64("user.id", actor),
		attribute.String("pet.uuid", input.PetUUID),
		attribute.Int64("dose.id", input.DoseID),
	)
	defer span.End()

	dose, err := s.inner.MarkDoseAdministered(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark dose administered", slog.Int64("dose.id", input.DoseID))
	}
	if dose != nil {
		s.metrics.recordAdministered(ctx, dose.Name)
		s.logInfo(ctx, "dose administered", slog.Int64("dose.id", dose.ID), slog.String("dose.name", dose.Name))
	}
	return dose, nil
}

// GetByUUID loads a single pet by its external identifier.
func (s *Service) GetByUUID(ctx context.Context, uuid string) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByUUID", attribute.String("pet.uuid", uuid))
	defer span.End()

	result, err := s.inner.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.String("pet.uuid", uuid))
	}
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("pet.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", id))
	}
	return result, nil
}

// ListVisibleTo returns the pets shown in a user's own listing.
func (s *Service) ListVisibleTo(ctx context.Context, userID int64) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListVisibleTo", attribute.Int64("user.id", userID))
	defer span.End()

	result, err := s.inner.ListVisibleTo(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list visible pets", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	s.logInfo(ctx, "listed visible pets", slog.Int64("user.id", userID), slog.Int("count", len(result)))
	return result, nil
}

// ListInAdoption returns every pet currently offered for adoption.
func (s *Service) ListInAdoption(ctx context.Context) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListInAdoption")
	defer span.End()

	result, err := s.inner.ListInAdoption(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets in adoption")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

func (s *Service) ListBreeds(ctx context.Context) ([]*domain.Breed, error) {
	ctx, span := s.startSpan(ctx, "Service.ListBreeds")
	defer span.End()

	result, err := s.inner.ListBreeds(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list breeds")
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
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

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsRegistered    metric.Int64Counter
	petsUpdated       metric.Int64Counter
	transitions       metric.Int64Counter
	dosesScheduled    metric.Int64Counter
	dosesAdministered metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsRegistered, _ := m.Int64Counter("pets.service.registered", metric.WithDescription("Number of pets registered"))
	petsUpdated, _ := m.Int64Counter("pets.service.updated", metric.WithDescription("Number of pets updated"))
	transitions, _ := m.Int64Counter("pets.service.transitions", metric.WithDescription("Number of applied lifecycle transitions"))
	dosesScheduled, _ := m.Int64Counter("pets.service.doses_scheduled", metric.WithDescription("Number of doses scheduled at registration"))
	dosesAdministered, _ := m.Int64Counter("pets.service.doses_administered", metric.WithDescription("Number of doses marked administered"))
	return serviceMetrics{
		petsRegistered:    petsRegistered,
		petsUpdated:       petsUpdated,
		transitions:       transitions,
		dosesScheduled:    dosesScheduled,
		dosesAdministered: dosesAdministered,
	}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, species domain.Species, doses int) {
	addCounter(ctx, m.petsRegistered, 1, attribute.String("pet.species", string(species)))
	addCounter(ctx, m.dosesScheduled, int64(doses), attribute.String("pet.species", string(species)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsUpdated, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordTransition(ctx context.Context, t domain.Transition) {
	addCounter(ctx, m.transitions, 1, attribute.String("pet.transition", string(t)))
}

func (m serviceMetrics) recordAdministered(ctx context.Context, name string) {
	addCounter(ctx, m.dosesAdministered, 1, attribute.String("dose.name", name))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil || value == 0 {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
