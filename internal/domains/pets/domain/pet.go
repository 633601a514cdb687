package domain

import (
	"errors"
	"strings"
	"time"
)

// Status represents the adoption lifecycle state of a registered pet.
type Status string

const (
	StatusOwned      Status = "OWNED"
	StatusInAdoption Status = "IN_ADOPTION"
	StatusAdopted    Status = "ADOPTED"
)

// Valid reports whether the status belongs to the closed lifecycle set.
func (s Status) Valid() bool {
	switch s {
	case StatusOwned, StatusInAdoption, StatusAdopted:
		return true
	}
	return false
}

// Species is the closed set of animals the registry knows how to vaccinate.
type Species string

const (
	SpeciesDog Species = "DOG"
	SpeciesCat Species = "CAT"
)

// Valid reports whether the species is supported.
func (s Species) Valid() bool {
	return s == SpeciesDog || s == SpeciesCat
}

// Breed links a pet to its species.
type Breed struct {
	ID      int64
	Name    string
	Species Species
}

// CareFlags are owner-reported and informational only.
type CareFlags struct {
	Dewormed   bool
	Sterilized bool
	Vaccinated bool
}

// AdoptionRecord is created the first time a pet is offered for adoption.
type AdoptionRecord struct {
	PetID       int64
	Description string
	CreatedAt   time.Time
}

// Pet is the aggregate root of the pets bounded context.
type Pet struct {
	ID        int64
	UUID      string
	Name      string
	Breed     Breed
	BirthDate time.Time
	Care      CareFlags
	Status    Status
	OwnerID   int64
	AdopterID *int64
	Images    []string
	Adoption  *AdoptionRecord
	// Version is bumped by the store on every successful save.
	Version int64

	events []Event
}

var (
	ErrEmptyName         = errors.New("pet name is required")
	ErrMissingOwner      = errors.New("pet owner is required")
	ErrMissingUUID       = errors.New("pet uuid is required")
	ErrUnknownBreed      = errors.New("pet breed must reference a supported species")
	ErrBirthDateInFuture = errors.New("birth date must be in the past")
	ErrEmptyDescription  = errors.New("adoption description is required")
	ErrEmptyMobile       = errors.New("adopter mobile is required")
	ErrMissingAdopter    = errors.New("adopter is required")
	ErrSelfAdoption      = errors.New("owner cannot adopt their own pet")
)

// NewPet validates the registration invariants and builds an OWNED pet.
func NewPet(uuid, name string, breed Breed, birthDate time.Time, ownerID int64, now time.Time) (*Pet, error) {
	if strings.TrimSpace(uuid) == "" {
		return nil, ErrMissingUUID
	}
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	if !breed.Species.Valid() {
		return nil, ErrUnknownBreed
	}
	p := &Pet{UUID: uuid, Breed: breed, OwnerID: ownerID, Status: StatusOwned}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.UpdateBirthDate(birthDate, now); err != nil {
		return nil, err
	}
	p.record(PetRegistered{BaseEvent: BaseEvent{Timestamp: now}, PetUUID: uuid, OwnerID: ownerID, Species: breed.Species})
	return p, nil
}

// Species returns the species of the pet's breed.
func (p *Pet) Species() Species {
	return p.Breed.Species
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// UpdateBirthDate rejects birth dates later than now.
func (p *Pet) UpdateBirthDate(birthDate, now time.Time) error {
	if birthDate.After(now) {
		return ErrBirthDateInFuture
	}
	p.BirthDate = birthDate
	return nil
}

// UpdateCare replaces the informational care flags.
func (p *Pet) UpdateCare(flags CareFlags) {
	p.Care = flags
}

// ReplaceImages swaps the ordered image references.
func (p *Pet) ReplaceImages(images []string) {
	if len(images) == 0 {
		p.Images = nil
		return
	}
	p.Images = append([]string{}, images...)
}

// Clone returns a deep copy without pending events.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	clone.events = nil
	if p.AdopterID != nil {
		adopter := *p.AdopterID
		clone.AdopterID = &adopter
	}
	if len(p.Images) > 0 {
		clone.Images = append([]string{}, p.Images...)
	}
	if p.Adoption != nil {
		adoption := *p.Adoption
		clone.Adoption = &adoption
	}
	return &clone
}
