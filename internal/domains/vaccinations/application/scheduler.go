package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	petdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/ports"
)

// Scheduler dispatches a pet to the strategy of its species and persists the due doses.
type Scheduler struct {
	store      ports.Store
	strategies map[petdomain.Species]domain.Strategy
	logger     *slog.Logger
	now        func() time.Time
	idempotent bool
}

type Option func(*Scheduler)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to compute ages and dose dates.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithIdempotentScheduling skips vaccine names already recorded for the pet.
// Without it every Schedule call books the full bracket again.
func WithIdempotentScheduling(enabled bool) Option {
	return func(s *Scheduler) {
		s.idempotent = enabled
	}
}

// NewScheduler wires the dose store with a fixed species → strategy table.
// The table is copied; it cannot be changed after construction.
func NewScheduler(store ports.Store, strategies map[petdomain.Species]domain.Strategy, opts ...Option) *Scheduler {
	table := make(map[petdomain.Species]domain.Strategy, len(strategies))
	for species, strategy := range strategies {
		if strategy != nil {
			table[species] = strategy
		}
	}
	s := &Scheduler{
		store:      store,
		strategies: table,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Schedule registers one PENDING dose per vaccine due for the subject right now.
func (s *Scheduler) Schedule(ctx context.Context, subject domain.Subject) ([]*domain.Dose, error) {
	strategy, ok := s.strategies[subject.Species]
	if !ok {
		err := &StrategyNotFoundError{Species: subject.Species}
		s.logger.LogAttrs(ctx, slog.LevelError, "vaccination strategy missing",
			slog.Int64("pet.id", subject.PetID),
			slog.String("pet.species", string(subject.Species)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	now := s.now()
	weeks := domain.AgeInWeeks(subject.BirthDate, now)
	names := strategy.Due(subject.BirthDate, now)
	if s.idempotent && len(names) > 0 {
		var err error
		if names, err = s.withoutRecorded(ctx, subject.PetID, names); err != nil {
			return nil, err
		}
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "vaccination schedule computed",
		slog.Int64("pet.id", subject.PetID),
		slog.String("pet.species", string(subject.Species)),
		slog.Int("pet.age_weeks", weeks),
		slog.String("bracket", domain.BracketForAge(weeks).String()),
		slog.Int("doses", len(names)),
	)
	doses := make([]*domain.Dose, 0, len(names))
	for _, name := range names {
		saved, err := s.store.Save(ctx, domain.NewPendingDose(subject.PetID, name, now))
		if err != nil {
			return nil, err
		}
		doses = append(doses, saved)
	}
	return doses, nil
}

func (s *Scheduler) withoutRecorded(ctx context.Context, petID int64, names []string) ([]string, error) {
	existing, err := s.store.FindAllByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	recorded := make(map[string]struct{}, len(existing))
	for _, dose := range existing {
		recorded[dose.Name] = struct{}{}
	}
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := recorded[name]; !ok {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

// ListFor returns every dose of the pet.
func (s *Scheduler) ListFor(ctx context.Context, petID int64) ([]*domain.Dose, error) {
	return s.store.FindAllByPet(ctx, petID)
}

// PendingFor returns the doses of the pet that were not administered yet.
func (s *Scheduler) PendingFor(ctx context.Context, petID int64) ([]*domain.Dose, error) {
	doses, err := s.store.FindAllByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	pending := make([]*domain.Dose, 0, len(doses))
	for _, dose := range doses {
		if dose.Status == domain.DoseStatusPending {
			pending = append(pending, dose)
		}
	}
	return pending, nil
}

// DeleteFor removes every dose of the pet.
func (s *Scheduler) DeleteFor(ctx context.Context, petID int64) error {
	return s.store.DeleteAllByPet(ctx, petID)
}

// MarkAdministered flips a pending dose to ADMINISTERED.
func (s *Scheduler) MarkAdministered(ctx context.Context, doseID int64) (*domain.Dose, error) {
	dose, err := s.store.FindByID(ctx, doseID)
	if err != nil {
		return nil, err
	}
	if err := dose.MarkAdministered(); err != nil {
		return nil, err
	}
	return s.store.Save(ctx, dose)
}
