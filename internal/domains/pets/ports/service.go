package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-registry/internal/domains/pets/application/types"
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
// The acting user is passed explicitly to every mutating operation.
type Service interface {
	RegisterPet(ctx context.Context, actor int64, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error)
	OfferForAdoption(ctx context.Context, actor int64, input pettypes.OfferForAdoptionInput) (*domain.AdoptionRecord, error)
	FinalizeAdoption(ctx context.Context, actor int64, input pettypes.FinalizeAdoptionInput) (*pettypes.PetProjection, error)
	DeletePet(ctx context.Context, actor int64, id int64) error
	UpdatePet(ctx context.Context, actor int64, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	RescheduleVaccinations(ctx context.Context, actor int64, uuid string) (*pettypes.PetProjection, error)
	MarkDoseAdministered(ctx context.Context, actor int64, input pettypes.MarkDoseInput) (*vaccdomain.Dose, error)
	GetByUUID(ctx context.Context, uuid string) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error)
	ListVisibleTo(ctx context.Context, userID int64) ([]*pettypes.PetProjection, error)
	ListInAdoption(ctx context.Context) ([]*pettypes.PetProjection, error)
	ListBreeds(ctx context.Context) ([]*domain.Breed, error)
}
