package application

import (
	"errors"
	"fmt"

	petdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

// ErrConfiguration marks server-side faults that a caller cannot correct.
var ErrConfiguration = errors.New("vaccination configuration error")

// StrategyNotFoundError is returned when no strategy is registered for a species.
type StrategyNotFoundError struct {
	Species petdomain.Species
}

func (e *StrategyNotFoundError) Error() string {
	return fmt.Sprintf("no vaccination strategy found for species %q", e.Species)
}

func (e *StrategyNotFoundError) Unwrap() error {
	return ErrConfiguration
}
