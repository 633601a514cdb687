package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

var _ ports.PetStore = (*PetStore)(nil)

// PetStore persists pets in PostgreSQL using GORM-mapped columns. The schema is owned by
// the migrations package.
type PetStore struct {
	db *gorm.DB
}

// NewPetStore wires a PostgreSQL-backed pet store. The caller owns the DB lifecycle.
func NewPetStore(db *gorm.DB) *PetStore {
	return &PetStore{db: db}
}

// Save inserts a pet when its ID is zero. Updates are conditional on the stored version.
func (s *PetStore) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	conn := platformpostgres.Conn(ctx, s.db)
	if record.ID == 0 {
		record.Version = 1
		if err := conn.Omit(clause.Associations).Create(&record).Error; err != nil {
			return nil, err
		}
		return s.FindByID(ctx, record.ID)
	}

	result := conn.Model(&petRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]any{
			"name":       record.Name,
			"breed_id":   record.BreedID,
			"birth_date": record.BirthDate,
			"dewormed":   record.Dewormed,
			"sterilized": record.Sterilized,
			"vaccinated": record.Vaccinated,
			"status":     record.Status,
			"adopter_id": record.AdopterID,
			"images":     record.Images,
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, s.missOrConflict(ctx, record.ID)
	}
	return s.FindByID(ctx, record.ID)
}

// FindByID fetches a pet by identifier.
func (s *PetStore) FindByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	return s.findOne(ctx, "pets.id = ?", id)
}

// FindByUUID fetches a pet by its external identifier.
func (s *PetStore) FindByUUID(ctx context.Context, uuid string) (*projection.Projection[*domain.Pet], error) {
	return s.findOne(ctx, "pets.uuid = ?", uuid)
}

// Delete removes a pet when its version is current.
func (s *PetStore) Delete(ctx context.Context, pet *domain.Pet) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if pet == nil {
		return errors.New("cannot delete nil pet")
	}
	result := platformpostgres.Conn(ctx, s.db).
		Where("id = ? AND version = ?", pet.ID, pet.Version).
		Delete(&petRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missOrConflict(ctx, pet.ID)
	}
	return nil
}

// FindAllByOwner returns the pets registered by the owner.
func (s *PetStore) FindAllByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	return s.findAll(ctx, "pets.owner_id = ?", ownerID)
}

// FindAllByStatus returns the pets in the given status.
func (s *PetStore) FindAllByStatus(ctx context.Context, status domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	return s.findAll(ctx, "pets.status = ?", string(status))
}

// FindAllByAdopter returns the pets adopted by the user.
func (s *PetStore) FindAllByAdopter(ctx context.Context, adopterID int64) ([]*projection.Projection[*domain.Pet], error) {
	return s.findAll(ctx, "pets.adopter_id = ?", adopterID)
}

func (s *PetStore) findOne(ctx context.Context, query string, arg any) (*projection.Projection[*domain.Pet], error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := platformpostgres.Conn(ctx, s.db).Joins("Breed").First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrPetNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

func (s *PetStore) findAll(ctx context.Context, query string, arg any) ([]*projection.Projection[*domain.Pet], error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := platformpostgres.Conn(ctx, s.db).
		Joins("Breed").
		Where(query, arg).
		Order("pets.id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, nil
}

func (s *PetStore) missOrConflict(ctx context.Context, id int64) error {
	var count int64
	if err := platformpostgres.Conn(ctx, s.db).Model(&petRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrPetNotFound
	}
	return ports.ErrConcurrentModification
}

func (s *PetStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres pet store not configured")
	}
	return nil
}
