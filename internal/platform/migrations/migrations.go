package migrations

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&breedRecord{},
		&petRecord{},
		&adoptionRecord{},
		&doseRecord{},
	)
}

// Breed is a catalog entry seeded by SeedBreeds.
type Breed struct {
	ID      int64
	Name    string
	Species string
}

// DefaultBreeds is the catalog loaded on a fresh database.
var DefaultBreeds = []Breed{
	{ID: 1, Name: "Labrador Retriever", Species: "DOG"},
	{ID: 2, Name: "German Shepherd", Species: "DOG"},
	{ID: 3, Name: "Chihuahua", Species: "DOG"},
	{ID: 4, Name: "Mixed Breed Dog", Species: "DOG"},
	{ID: 5, Name: "Siamese", Species: "CAT"},
	{ID: 6, Name: "Persian", Species: "CAT"},
	{ID: 7, Name: "Mixed Breed Cat", Species: "CAT"},
}

// SeedBreeds inserts the given breeds, leaving existing ids untouched.
func SeedBreeds(ctx context.Context, db *gorm.DB, breeds []Breed) error {
	if db == nil || len(breeds) == 0 {
		return nil
	}
	records := make([]breedRecord, 0, len(breeds))
	for _, b := range breeds {
		records = append(records, breedRecord{ID: b.ID, Name: b.Name, Species: b.Species})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&records).Error
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Mobile    string    `gorm:"column:mobile"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Breed schema mirrors the pets breed store.
type breedRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	Species string `gorm:"column:species;type:varchar(16)"`
}

func (breedRecord) TableName() string { return "breeds" }

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID         int64          `gorm:"primaryKey;column:id"`
	UUID       string         `gorm:"column:uuid;type:varchar(36);uniqueIndex"`
	Name       string         `gorm:"column:name"`
	BreedID    int64          `gorm:"column:breed_id;index"`
	Breed      breedRecord    `gorm:"foreignKey:BreedID;constraint:OnDelete:RESTRICT"`
	BirthDate  time.Time      `gorm:"column:birth_date"`
	Dewormed   bool           `gorm:"column:dewormed"`
	Sterilized bool           `gorm:"column:sterilized"`
	Vaccinated bool           `gorm:"column:vaccinated"`
	Status     string         `gorm:"column:status;type:varchar(32);index"`
	OwnerID    int64          `gorm:"column:owner_id;index"`
	AdopterID  *int64         `gorm:"column:adopter_id;index"`
	Images     pq.StringArray `gorm:"column:images;type:text[]"`
	Version    int64          `gorm:"column:version;not null;default:1"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Adoption schema mirrors the pets adoption store.
type adoptionRecord struct {
	PetID       int64     `gorm:"primaryKey;column:pet_id;autoIncrement:false"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (adoptionRecord) TableName() string { return "pet_adoptions" }

// Dose schema mirrors the vaccinations Postgres adapter.
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
