package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

var _ ports.AdoptionStore = (*AdoptionStore)(nil)

// AdoptionStore keeps one adoption record per pet in PostgreSQL.
type AdoptionStore struct {
	db *gorm.DB
}

// NewAdoptionStore wires a PostgreSQL-backed adoption store.
func NewAdoptionStore(db *gorm.DB) *AdoptionStore {
	return &AdoptionStore{db: db}
}

// Save inserts or replaces the record of a pet.
func (s *AdoptionStore) Save(ctx context.Context, record *domain.AdoptionRecord) (*domain.AdoptionRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if record == nil || record.PetID == 0 {
		return nil, errors.New("adoption record must reference a pet")
	}
	row := adoptionRecord{PetID: record.PetID, Description: record.Description, CreatedAt: record.CreatedAt}
	if err := platformpostgres.Conn(ctx, s.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pet_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"description"}),
		}).Create(&row).Error; err != nil {
		return nil, err
	}
	return s.FindByPet(ctx, record.PetID)
}

// FindByPet fetches the record of a pet.
func (s *AdoptionStore) FindByPet(ctx context.Context, petID int64) (*domain.AdoptionRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var row adoptionRecord
	if err := platformpostgres.Conn(ctx, s.db).First(&row, "pet_id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAdoptionNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// DeleteByPet removes the record of a pet if there is one.
func (s *AdoptionStore) DeleteByPet(ctx context.Context, petID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return platformpostgres.Conn(ctx, s.db).Where("pet_id = ?", petID).Delete(&adoptionRecord{}).Error
}

func (s *AdoptionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres adoption store not configured")
	}
	return nil
}
