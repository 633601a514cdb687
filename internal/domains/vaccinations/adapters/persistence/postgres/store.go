package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/ports"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

var _ ports.Store = (*Store)(nil)

// Store persists vaccination doses in PostgreSQL. The schema is owned by the migrations package.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed dose store. The caller owns the DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type doseRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	PetID       int64     `gorm:"column:pet_id;index"`
	Name        string    `gorm:"column:name"`
	ScheduledOn time.Time `gorm:"column:scheduled_on;type:date"`
	Status      string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (doseRecord) TableName() string { return "vaccinations" }

func newDoseRecord(d *domain.Dose) doseRecord {
	return doseRecord{
		ID:          d.ID,
		PetID:       d.PetID,
		Name:        d.Name,
		ScheduledOn: d.ScheduledOn,
		Status:      string(d.Status),
	}
}

func (r *doseRecord) toDomain() *domain.Dose {
	return &domain.Dose{
		ID:          r.ID,
		PetID:       r.PetID,
		Name:        r.Name,
		ScheduledOn: r.ScheduledOn,
		Status:      domain.DoseStatus(r.Status),
	}
}

// Save inserts a dose when its ID is zero and updates name and status otherwise.
func (s *Store) Save(ctx context.Context, dose *domain.Dose) (*domain.Dose, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if dose == nil {
		return nil, errors.New("cannot save nil dose")
	}
	record := newDoseRecord(dose)
	conn := platformpostgres.Conn(ctx, s.db)
	if record.ID == 0 {
		if err := conn.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := conn.Model(&doseRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":       record.Name,
			"status":     record.Status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrDoseNotFound
	}
	return s.FindByID(ctx, record.ID)
}

// FindByID fetches a dose by identifier.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Dose, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record doseRecord
	if err := platformpostgres.Conn(ctx, s.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrDoseNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindAllByPet returns the doses of a pet ordered by id.
func (s *Store) FindAllByPet(ctx context.Context, petID int64) ([]*domain.Dose, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []doseRecord
	if err := platformpostgres.Conn(ctx, s.db).
		Where("pet_id = ?", petID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	doses := make([]*domain.Dose, 0, len(records))
	for i := range records {
		doses = append(doses, records[i].toDomain())
	}
	return doses, nil
}

// DeleteAllByPet removes every dose of a pet. Deleting nothing is not an error.
func (s *Store) DeleteAllByPet(ctx context.Context, petID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return platformpostgres.Conn(ctx, s.db).Where("pet_id = ?", petID).Delete(&doseRecord{}).Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres dose store not configured")
	}
	return nil
}
