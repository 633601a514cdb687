package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/Apurer/pet-registry/internal/domains/pets/application/types"
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

var errMissingActor = errors.New("acting user is required")

// Dependencies are the collaborators the pets service coordinates.
type Dependencies struct {
	Pets       ports.PetStore
	Adoptions  ports.AdoptionStore
	Breeds     ports.BreedStore
	Users      ports.UserDirectory
	Vaccines   ports.VaccinationScheduler
	Notifier   ports.NotificationGateway
	UnitOfWork ports.UnitOfWork
}

// Service orchestrates the pet lifecycle: registration, adoption and deletion,
// together with vaccination scheduling and owner notification.
type Service struct {
	pets      ports.PetStore
	adoptions ports.AdoptionStore
	breeds    ports.BreedStore
	users     ports.UserDirectory
	vaccines  ports.VaccinationScheduler
	notifier  ports.NotificationGateway
	uow       ports.UnitOfWork

	logger  *slog.Logger
	now     func() time.Time
	newUUID func() string
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock injects the clock used for birth date defaults, validation and scheduling.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithUUIDGenerator overrides how registration assigns pet UUIDs.
func WithUUIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newUUID = gen
	}
}

// NewService wires the pets service. Notifier and UnitOfWork are optional; without them
// notifications are dropped and writes are not grouped.
func NewService(deps Dependencies, opts ...Option) (*Service, error) {
	switch {
	case deps.Pets == nil:
		return nil, errors.New("pets service: pet store is required")
	case deps.Adoptions == nil:
		return nil, errors.New("pets service: adoption store is required")
	case deps.Breeds == nil:
		return nil, errors.New("pets service: breed store is required")
	case deps.Users == nil:
		return nil, errors.New("pets service: user directory is required")
	case deps.Vaccines == nil:
		return nil, errors.New("pets service: vaccination scheduler is required")
	}
	s := &Service{
		pets:      deps.Pets,
		adoptions: deps.Adoptions,
		breeds:    deps.Breeds,
		users:     deps.Users,
		vaccines:  deps.Vaccines,
		notifier:  deps.Notifier,
		uow:       deps.UnitOfWork,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		newUUID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.uow == nil {
		s.uow = ports.UnitOfWorkFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		})
	}
	return s, nil
}

// RegisterPet creates an OWNED pet for the acting user and schedules its due vaccinations
// in the same unit of work.
func (s *Service) RegisterPet(ctx context.Context, actor int64, input types.RegisterPetInput) (*types.PetProjection, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, actor); err != nil {
		return nil, lookupError("user", actor, err)
	}
	breed, err := s.breeds.FindByID(ctx, input.BreedID)
	if err != nil {
		return nil, lookupError("breed", input.BreedID, err)
	}
	now := s.now()
	birthDate := now
	if input.BirthDate != nil {
		birthDate = *input.BirthDate
	}
	pet, err := domain.NewPet(s.newUUID(), input.Name, *breed, birthDate, actor, now)
	if err != nil {
		return nil, mapError(err)
	}
	pet.UpdateCare(input.Care)
	pet.ReplaceImages(input.Images)

	var (
		saved *projection.Projection[*domain.Pet]
		doses []*vaccdomain.Dose
	)
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		if saved, err = s.pets.Save(ctx, pet); err != nil {
			return err
		}
		doses, err = s.vaccines.Schedule(ctx, subjectOf(saved.Entity))
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.publish(ctx, pet); err != nil {
		return types.NewPetProjection(saved, doses), err
	}
	return types.NewPetProjection(saved, doses), nil
}

// OfferForAdoption moves an OWNED pet to IN_ADOPTION and stores its adoption record.
func (s *Service) OfferForAdoption(ctx context.Context, actor int64, input types.OfferForAdoptionInput) (*domain.AdoptionRecord, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validateUUID(input.UUID); err != nil {
		return nil, err
	}
	stored, err := s.pets.FindByUUID(ctx, input.UUID)
	if err != nil {
		return nil, lookupError("pet", input.UUID, err)
	}
	pet := stored.Entity
	record, err := pet.OfferForAdoption(input.Description, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	var saved *domain.AdoptionRecord
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.pets.Save(ctx, pet); err != nil {
			return err
		}
		var err error
		saved, err = s.adoptions.Save(ctx, record)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.publish(ctx, pet); err != nil {
		return saved, err
	}
	return saved, nil
}

// FinalizeAdoption moves an IN_ADOPTION pet to ADOPTED with the acting user as adopter,
// stores the adopter's mobile in the same unit of work and then notifies the previous owner.
// When only the notification fails the committed pet is returned together with a
// CollaboratorError.
func (s *Service) FinalizeAdoption(ctx context.Context, actor int64, input types.FinalizeAdoptionInput) (*types.PetProjection, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validateUUID(input.UUID); err != nil {
		return nil, err
	}
	stored, err := s.pets.FindByUUID(ctx, input.UUID)
	if err != nil {
		return nil, lookupError("pet", input.UUID, err)
	}
	if _, err := s.users.FindByID(ctx, actor); err != nil {
		return nil, lookupError("user", actor, err)
	}
	pet := stored.Entity
	mobile := strings.TrimSpace(input.Mobile)
	if err := pet.FinalizeAdoption(actor, mobile, s.now()); err != nil {
		return nil, mapError(err)
	}
	var saved *projection.Projection[*domain.Pet]
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		if saved, err = s.pets.Save(ctx, pet); err != nil {
			return err
		}
		return s.users.UpdateMobile(ctx, actor, mobile)
	})
	if err != nil {
		return nil, mapError(err)
	}
	result, err := s.project(ctx, saved)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, pet); err != nil {
		return result, err
	}
	return result, nil
}

// DeletePet removes an OWNED or ADOPTED pet together with its doses and adoption record.
func (s *Service) DeletePet(ctx context.Context, actor int64, id int64) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	stored, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return lookupError("pet", id, err)
	}
	pet := stored.Entity
	if err := pet.MarkDeleted(s.now()); err != nil {
		return mapError(err)
	}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.vaccines.DeleteFor(ctx, pet.ID); err != nil {
			return err
		}
		if err := s.adoptions.DeleteByPet(ctx, pet.ID); err != nil {
			return err
		}
		return s.pets.Delete(ctx, pet)
	})
	if err != nil {
		return mapError(err)
	}
	return s.publish(ctx, pet)
}

// UpdatePet applies an administrative edit. The status is never changed here.
func (s *Service) UpdatePet(ctx context.Context, actor int64, input types.UpdatePetInput) (*types.PetProjection, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	stored, err := s.pets.FindByID(ctx, input.ID)
	if err != nil {
		return nil, lookupError("pet", input.ID, err)
	}
	pet := stored.Entity
	if input.Name != nil {
		if err := pet.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.BirthDate != nil {
		if err := pet.UpdateBirthDate(*input.BirthDate, s.now()); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Care != nil {
		pet.UpdateCare(*input.Care)
	}
	if input.ReplaceImages || len(input.Images) > 0 {
		pet.ReplaceImages(input.Images)
	}
	var saved *projection.Projection[*domain.Pet]
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.pets.Save(ctx, pet)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, saved)
}

// RescheduleVaccinations runs the scheduler again for an existing pet. Unless the scheduler
// is idempotent this books the current bracket a second time.
func (s *Service) RescheduleVaccinations(ctx context.Context, actor int64, petUUID string) (*types.PetProjection, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	stored, err := s.pets.FindByUUID(ctx, petUUID)
	if err != nil {
		return nil, lookupError("pet", petUUID, err)
	}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		_, err := s.vaccines.Schedule(ctx, subjectOf(stored.Entity))
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, stored)
}

// MarkDoseAdministered flips one of the pet's doses to ADMINISTERED.
func (s *Service) MarkDoseAdministered(ctx context.Context, actor int64, input types.MarkDoseInput) (*vaccdomain.Dose, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	stored, err := s.pets.FindByUUID(ctx, input.PetUUID)
	if err != nil {
		return nil, lookupError("pet", input.PetUUID, err)
	}
	doses, err := s.vaccines.ListFor(ctx, stored.Entity.ID)
	if err != nil {
		return nil, err
	}
	owned := false
	for _, d := range doses {
		if d.ID == input.DoseID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, notFound("dose", input.DoseID, nil)
	}
	var dose *vaccdomain.Dose
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		dose, err = s.vaccines.MarkAdministered(ctx, input.DoseID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return dose, nil
}

// GetByUUID loads a pet with its adoption record and pending doses.
func (s *Service) GetByUUID(ctx context.Context, petUUID string) (*types.PetProjection, error) {
	stored, err := s.pets.FindByUUID(ctx, petUUID)
	if err != nil {
		return nil, lookupError("pet", petUUID, err)
	}
	return s.project(ctx, stored)
}

// GetByID loads a pet with its adoption record and pending doses.
func (s *Service) GetByID(ctx context.Context, id int64) (*types.PetProjection, error) {
	stored, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("pet", id, err)
	}
	return s.project(ctx, stored)
}

// ListVisibleTo returns the pets the user owns and nobody adopted, plus the pets the user adopted.
func (s *Service) ListVisibleTo(ctx context.Context, userID int64) ([]*types.PetProjection, error) {
	var owned, adopted, adoptedByUser []*projection.Projection[*domain.Pet]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		owned, err = s.pets.FindAllByOwner(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		adopted, err = s.pets.FindAllByStatus(gctx, domain.StatusAdopted)
		return err
	})
	g.Go(func() (err error) {
		adoptedByUser, err = s.pets.FindAllByAdopter(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	byID := map[int64]*projection.Projection[*domain.Pet]{}
	entities := func(list []*projection.Projection[*domain.Pet]) []*domain.Pet {
		pets := make([]*domain.Pet, 0, len(list))
		for _, p := range list {
			byID[p.Entity.ID] = p
			pets = append(pets, p.Entity)
		}
		return pets
	}
	visible := domain.VisibleTo(entities(owned), entities(adopted), entities(adoptedByUser))
	stored := make([]*projection.Projection[*domain.Pet], 0, len(visible))
	for _, p := range visible {
		stored = append(stored, byID[p.ID])
	}
	return s.projectAll(ctx, stored)
}

// ListInAdoption returns every pet currently offered for adoption.
func (s *Service) ListInAdoption(ctx context.Context) ([]*types.PetProjection, error) {
	stored, err := s.pets.FindAllByStatus(ctx, domain.StatusInAdoption)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, stored)
}

// ListBreeds exposes the breed catalog used at registration.
func (s *Service) ListBreeds(ctx context.Context) ([]*domain.Breed, error) {
	return s.breeds.List(ctx)
}

func (s *Service) project(ctx context.Context, stored *projection.Projection[*domain.Pet]) (*types.PetProjection, error) {
	pet := stored.Entity
	// Only pets that left OWNED can have an adoption record.
	if pet.Adoption == nil && pet.Status != domain.StatusOwned {
		record, err := s.adoptions.FindByPet(ctx, pet.ID)
		switch {
		case err == nil:
			pet.Adoption = record
		case !errors.Is(err, ports.ErrAdoptionNotFound):
			return nil, err
		}
	}
	pending, err := s.vaccines.PendingFor(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	return types.NewPetProjection(stored, pending), nil
}

func (s *Service) projectAll(ctx context.Context, stored []*projection.Projection[*domain.Pet]) ([]*types.PetProjection, error) {
	result := make([]*types.PetProjection, 0, len(stored))
	for _, p := range stored {
		projected, err := s.project(ctx, p)
		if err != nil {
			return nil, err
		}
		result = append(result, projected)
	}
	return result, nil
}

// publish dispatches the events the aggregate recorded during a committed operation.
func (s *Service) publish(ctx context.Context, pet *domain.Pet) error {
	events := pet.Events()
	pet.ClearEvents()
	var errs []error
	for _, event := range events {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "pet event", slog.String("event", event.EventName()), slog.String("pet.uuid", pet.UUID))
		if adopted, ok := event.(domain.PetAdopted); ok {
			if err := s.notifyOwner(ctx, adopted); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "adoption notification failed",
					slog.String("pet.uuid", adopted.PetUUID),
					slog.String("error", err.Error()),
				)
				errs = append(errs, &CollaboratorError{Collaborator: "adoption notification", Err: err})
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Service) notifyOwner(ctx context.Context, event domain.PetAdopted) error {
	if s.notifier == nil {
		return nil
	}
	owner, err := s.users.FindByID(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("load owner %d: %w", event.OwnerID, err)
	}
	adopter, err := s.users.FindByID(ctx, event.AdopterID)
	if err != nil {
		return fmt.Errorf("load adopter %d: %w", event.AdopterID, err)
	}
	return s.notifier.Notify(ctx, ports.AdoptionNotification{
		PetUUID:       event.PetUUID,
		PetName:       event.PetName,
		OwnerName:     owner.FullName(),
		OwnerEmail:    owner.Email,
		AdopterName:   adopter.FullName(),
		AdopterEmail:  adopter.Email,
		AdopterMobile: event.Mobile,
		AdoptedAt:     event.OccurredAt(),
	})
}

func subjectOf(pet *domain.Pet) vaccdomain.Subject {
	return vaccdomain.Subject{PetID: pet.ID, Species: pet.Species(), BirthDate: pet.BirthDate}
}

func requireActor(actor int64) error {
	if actor <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errMissingActor)
	}
	return nil
}

func validateUUID(value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%w: pet uuid %q: %w", ErrInvalidInput, value, err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
