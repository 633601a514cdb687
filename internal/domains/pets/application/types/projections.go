package types

import (
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

// PetProjection transports a pet with its derived pending doses and persistence metadata.
type PetProjection struct {
	Pet          *domain.Pet
	PendingDoses []*vaccdomain.Dose
	Metadata     projection.Metadata
}

// NewPetProjection wraps a stored pet.
func NewPetProjection(stored *projection.Projection[*domain.Pet], pending []*vaccdomain.Dose) *PetProjection {
	if stored == nil || stored.Entity == nil {
		return nil
	}
	return &PetProjection{
		Pet:          stored.Entity,
		PendingDoses: pending,
		Metadata:     stored.Metadata,
	}
}
