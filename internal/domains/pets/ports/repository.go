package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

var (
	ErrPetNotFound      = errors.New("pet not found")
	ErrBreedNotFound    = errors.New("breed not found")
	ErrAdoptionNotFound = errors.New("adoption record not found")
	// ErrConcurrentModification is returned when a pet changed since it was loaded.
	ErrConcurrentModification = errors.New("pet was modified concurrently")
)

// PetStore persists Pet aggregates. Adoption records and doses live in their own stores.
type PetStore interface {
	// Save inserts the pet when ID is zero. Otherwise it updates the stored row only if its
	// version equals pet.Version, and returns ErrConcurrentModification when it does not.
	// The returned projection carries the new version.
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	FindByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	FindByUUID(ctx context.Context, uuid string) (*projection.Projection[*domain.Pet], error)
	// Delete removes the pet under the same version rule as Save.
	Delete(ctx context.Context, pet *domain.Pet) error
	FindAllByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error)
	FindAllByStatus(ctx context.Context, status domain.Status) ([]*projection.Projection[*domain.Pet], error)
	FindAllByAdopter(ctx context.Context, adopterID int64) ([]*projection.Projection[*domain.Pet], error)
}

// AdoptionStore persists the one-to-one adoption record of a pet.
type AdoptionStore interface {
	Save(ctx context.Context, record *domain.AdoptionRecord) (*domain.AdoptionRecord, error)
	FindByPet(ctx context.Context, petID int64) (*domain.AdoptionRecord, error)
	// DeleteByPet removes the record if there is one.
	DeleteByPet(ctx context.Context, petID int64) error
}

// BreedStore resolves breed references.
type BreedStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Breed, error)
	List(ctx context.Context) ([]*domain.Breed, error)
}
