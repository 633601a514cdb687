package ports

import (
	"context"

	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
)

// VaccinationScheduler is the pets view of the vaccinations context.
type VaccinationScheduler interface {
	Schedule(ctx context.Context, subject vaccdomain.Subject) ([]*vaccdomain.Dose, error)
	ListFor(ctx context.Context, petID int64) ([]*vaccdomain.Dose, error)
	PendingFor(ctx context.Context, petID int64) ([]*vaccdomain.Dose, error)
	DeleteFor(ctx context.Context, petID int64) error
	MarkAdministered(ctx context.Context, doseID int64) (*vaccdomain.Dose, error)
}
