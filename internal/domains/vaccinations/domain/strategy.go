package domain

import (
	"time"

	petdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

const week = 7 * 24 * time.Hour

// Subject is the part of a pet the scheduling engine needs.
type Subject struct {
	PetID     int64
	Species   petdomain.Species
	BirthDate time.Time
}

// Strategy computes the vaccines due now for one species.
type Strategy interface {
	Species() petdomain.Species
	Due(birthDate, now time.Time) []string
}

// AgeInWeeks returns the number of whole weeks between birth and now.
// A birth date in the future counts as zero weeks.
func AgeInWeeks(birthDate, now time.Time) int {
	if !now.After(birthDate) {
		return 0
	}
	return int(now.Sub(birthDate) / week)
}

// DogStrategy schedules canine vaccines.
type DogStrategy struct {
	catalog Catalog
}

// NewDogStrategy reads dose names from the catalog.
func NewDogStrategy(catalog Catalog) *DogStrategy {
	return &DogStrategy{catalog: catalog}
}

// Species implements Strategy.
func (s *DogStrategy) Species() petdomain.Species { return petdomain.SpeciesDog }

// Due implements Strategy.
func (s *DogStrategy) Due(birthDate, now time.Time) []string {
	return s.catalog.Doses(petdomain.SpeciesDog, BracketForAge(AgeInWeeks(birthDate, now)))
}

// CatStrategy schedules feline vaccines.
type CatStrategy struct {
	catalog Catalog
}

// NewCatStrategy reads dose names from the catalog.
func NewCatStrategy(catalog Catalog) *CatStrategy {
	return &CatStrategy{catalog: catalog}
}

// Species implements Strategy.
func (s *CatStrategy) Species() petdomain.Species { return petdomain.SpeciesCat }

// Due implements Strategy.
func (s *CatStrategy) Due(birthDate, now time.Time) []string {
	return s.catalog.Doses(petdomain.SpeciesCat, BracketForAge(AgeInWeeks(birthDate, now)))
}

// DefaultStrategies builds the fixed species → strategy table.
func DefaultStrategies(catalog Catalog) map[petdomain.Species]Strategy {
	return map[petdomain.Species]Strategy{
		petdomain.SpeciesDog: NewDogStrategy(catalog),
		petdomain.SpeciesCat: NewCatStrategy(catalog),
	}
}
