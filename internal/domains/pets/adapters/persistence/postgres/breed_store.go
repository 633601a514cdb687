package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

var _ ports.BreedStore = (*BreedStore)(nil)

// BreedStore reads the breed catalog seeded by the migrations package.
type BreedStore struct {
	db *gorm.DB
}

// NewBreedStore wires a PostgreSQL-backed breed catalog.
func NewBreedStore(db *gorm.DB) *BreedStore {
	return &BreedStore{db: db}
}

// FindByID resolves a breed reference.
func (s *BreedStore) FindByID(ctx context.Context, id int64) (*domain.Breed, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres breed store not configured")
	}
	var row breedRecord
	if err := platformpostgres.Conn(ctx, s.db).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBreedNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// List returns the catalog ordered by id.
func (s *BreedStore) List(ctx context.Context) ([]*domain.Breed, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres breed store not configured")
	}
	var rows []breedRecord
	if err := platformpostgres.Conn(ctx, s.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	breeds := make([]*domain.Breed, 0, len(rows))
	for i := range rows {
		breeds = append(breeds, rows[i].toDomain())
	}
	return breeds, nil
}
