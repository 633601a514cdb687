package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
)

var ErrDoseNotFound = errors.New("vaccination dose not found")

// Store persists vaccination doses. Doses are owned by their pet.
type Store interface {
	// Save inserts a dose when ID is zero and updates it otherwise.
	Save(ctx context.Context, dose *domain.Dose) (*domain.Dose, error)
	FindByID(ctx context.Context, id int64) (*domain.Dose, error)
	FindAllByPet(ctx context.Context, petID int64) ([]*domain.Dose, error)
	DeleteAllByPet(ctx context.Context, petID int64) error
}
