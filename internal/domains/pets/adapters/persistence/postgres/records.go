package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

type breedRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	Species string `gorm:"column:species;type:varchar(16)"`
}

func (breedRecord) TableName() string { return "breeds" }

func (r *breedRecord) toDomain() *domain.Breed {
	return &domain.Breed{ID: r.ID, Name: r.Name, Species: domain.Species(r.Species)}
}

type petRecord struct {
	ID         int64          `gorm:"primaryKey;column:id"`
	UUID       string         `gorm:"column:uuid;type:varchar(36);uniqueIndex"`
	Name       string         `gorm:"column:name"`
	BreedID    int64          `gorm:"column:breed_id;index"`
	Breed      breedRecord    `gorm:"foreignKey:BreedID"`
	BirthDate  time.Time      `gorm:"column:birth_date"`
	Dewormed   bool           `gorm:"column:dewormed"`
	Sterilized bool           `gorm:"column:sterilized"`
	Vaccinated bool           `gorm:"column:vaccinated"`
	Status     string         `gorm:"column:status;type:varchar(32);index"`
	OwnerID    int64          `gorm:"column:owner_id;index"`
	AdopterID  *int64         `gorm:"column:adopter_id;index"`
	Images     pq.StringArray `gorm:"column:images;type:text[]"`
	Version    int64          `gorm:"column:version"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		ID:         p.ID,
		UUID:       p.UUID,
		Name:       p.Name,
		BreedID:    p.Breed.ID,
		BirthDate:  p.BirthDate,
		Dewormed:   p.Care.Dewormed,
		Sterilized: p.Care.Sterilized,
		Vaccinated: p.Care.Vaccinated,
		Status:     string(p.Status),
		OwnerID:    p.OwnerID,
		Images:     copyStringArray(p.Images),
		Version:    p.Version,
	}
	if p.AdopterID != nil {
		adopter := *p.AdopterID
		rec.AdopterID = &adopter
	}
	return rec
}

func toProjection(r *petRecord) *projection.Projection[*domain.Pet] {
	pet := &domain.Pet{
		ID:        r.ID,
		UUID:      r.UUID,
		Name:      r.Name,
		Breed:     *r.Breed.toDomain(),
		BirthDate: r.BirthDate,
		Care: domain.CareFlags{
			Dewormed:   r.Dewormed,
			Sterilized: r.Sterilized,
			Vaccinated: r.Vaccinated,
		},
		Status:  domain.Status(r.Status),
		OwnerID: r.OwnerID,
		Version: r.Version,
	}
	if r.AdopterID != nil {
		adopter := *r.AdopterID
		pet.AdopterID = &adopter
	}
	if len(r.Images) > 0 {
		pet.Images = append([]string{}, r.Images...)
	}
	return projection.Of(pet, projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
}

func copyStringArray(values []string) pq.StringArray {
	if len(values) == 0 {
		return pq.StringArray{}
	}
	return append(pq.StringArray{}, values...)
}

type adoptionRecord struct {
	PetID       int64     `gorm:"primaryKey;column:pet_id;autoIncrement:false"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (adoptionRecord) TableName() string { return "pet_adoptions" }

func (r *adoptionRecord) toDomain() *domain.AdoptionRecord {
	return &domain.AdoptionRecord{PetID: r.PetID, Description: r.Description, CreatedAt: r.CreatedAt}
}
