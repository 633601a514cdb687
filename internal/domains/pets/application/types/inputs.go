package types

import (
	"time"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

// RegisterPetInput carries the fields an owner supplies when registering a pet.
type RegisterPetInput struct {
	Name    string
	BreedID int64
	// BirthDate defaults to the current time when nil.
	BirthDate *time.Time
	Care      domain.CareFlags
	Images    []string
}

// OfferForAdoptionInput puts the pet identified by UUID up for adoption.
type OfferForAdoptionInput struct {
	UUID        string
	Description string
}

// FinalizeAdoptionInput completes the adoption of the pet identified by UUID.
// The acting user is the adopter.
type FinalizeAdoptionInput struct {
	UUID   string
	Mobile string
}

// UpdatePetInput is a partial edit. Nil fields are left unchanged and the status is never touched.
type UpdatePetInput struct {
	ID        int64
	Name      *string
	BirthDate *time.Time
	Care      *domain.CareFlags
	Images    []string
	// ReplaceImages applies Images even when it is empty.
	ReplaceImages bool
}

// MarkDoseInput marks one of the pet's doses as administered.
type MarkDoseInput struct {
	PetUUID string
	DoseID  int64
}
