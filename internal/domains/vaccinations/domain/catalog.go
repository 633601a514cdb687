package domain

import (
	petdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

// Vaccine names as they appear on dose records.
const (
	DA2PP           = "DA2PP"
	Deworming       = "Deworming"
	Leptospirosis   = "Leptospirosis"
	Rabies          = "Rabies"
	CanineInfluenza = "Canine influenza"
	FVRCP           = "FVRCP"
)

// Bracket is a contiguous range of ages in weeks mapped to a fixed dose set.
type Bracket int

const (
	BracketNone Bracket = iota
	BracketFirstRound
	BracketSecondRound
	BracketAnnual
)

func (b Bracket) String() string {
	switch b {
	case BracketFirstRound:
		return "first_round"
	case BracketSecondRound:
		return "second_round"
	case BracketAnnual:
		return "annual"
	}
	return "none"
}

// BracketForAge maps an age in weeks to its bracket. Boundaries are shared by all species.
func BracketForAge(weeks int) Bracket {
	switch {
	case weeks <= 8:
		return BracketNone
	case weeks <= 12:
		return BracketFirstRound
	case weeks <= 16:
		return BracketSecondRound
	default:
		return BracketAnnual
	}
}

// Catalog lists, per species and bracket, the vaccines due in that bracket.
type Catalog map[petdomain.Species]map[Bracket][]string

// DefaultCatalog returns the vaccination plan used by the registry.
func DefaultCatalog() Catalog {
	return Catalog{
		petdomain.SpeciesDog: {
			BracketFirstRound:  {DA2PP, Deworming},
			BracketSecondRound: {DA2PP, Deworming, Leptospirosis},
			BracketAnnual:      {DA2PP, Deworming, Leptospirosis, Rabies, CanineInfluenza},
		},
		petdomain.SpeciesCat: {
			// The second kitten round repeats the first one.
			BracketFirstRound:  {FVRCP, Deworming},
			BracketSecondRound: {FVRCP, Deworming},
			BracketAnnual:      {FVRCP, Deworming, Rabies},
		},
	}
}

// Doses returns a copy of the vaccine names for the species and bracket.
func (c Catalog) Doses(species petdomain.Species, bracket Bracket) []string {
	names := c[species][bracket]
	if len(names) == 0 {
		return nil
	}
	return append([]string{}, names...)
}
