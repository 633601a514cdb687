package domain

import (
	"errors"
	"time"
)

// DoseStatus tracks whether a vaccine was given.
type DoseStatus string

const (
	DoseStatusPending      DoseStatus = "PENDING"
	DoseStatusAdministered DoseStatus = "ADMINISTERED"
)

var ErrAlreadyAdministered = errors.New("dose was already administered")

// Dose is one scheduled or administered vaccination of a pet.
type Dose struct {
	ID          int64
	PetID       int64
	Name        string
	ScheduledOn time.Time
	Status      DoseStatus
}

// NewPendingDose schedules a dose on the calendar day of at.
func NewPendingDose(petID int64, name string, at time.Time) *Dose {
	y, m, d := at.Date()
	return &Dose{
		PetID:       petID,
		Name:        name,
		ScheduledOn: time.Date(y, m, d, 0, 0, 0, 0, at.Location()),
		Status:      DoseStatusPending,
	}
}

// MarkAdministered records that the dose was given.
func (d *Dose) MarkAdministered() error {
	if d.Status == DoseStatusAdministered {
		return ErrAlreadyAdministered
	}
	d.Status = DoseStatusAdministered
	return nil
}
