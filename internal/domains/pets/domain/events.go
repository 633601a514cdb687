package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PetRegistered is raised when an owner registers a new pet.
type PetRegistered struct {
	BaseEvent
	PetUUID string
	OwnerID int64
	Species Species
}

// EventName returns the event type identifier.
func (e PetRegistered) EventName() string {
	return "pets.pet.registered"
}

// PetOfferedForAdoption is raised when a pet enters IN_ADOPTION.
type PetOfferedForAdoption struct {
	BaseEvent
	PetID   int64
	PetUUID string
}

// EventName returns the event type identifier.
func (e PetOfferedForAdoption) EventName() string {
	return "pets.pet.offered_for_adoption"
}

// PetAdopted is raised when an adoption is finalized. The previous owner is notified from it.
type PetAdopted struct {
	BaseEvent
	PetID     int64
	PetUUID   string
	PetName   string
	OwnerID   int64
	AdopterID int64
	Mobile    string
}

// EventName returns the event type identifier.
func (e PetAdopted) EventName() string {
	return "pets.pet.adopted"
}

// PetDeleted is raised when a pet is removed from the registry.
type PetDeleted struct {
	BaseEvent
	PetID   int64
	PetUUID string
}

// EventName returns the event type identifier.
func (e PetDeleted) EventName() string {
	return "pets.pet.deleted"
}

// AggregateWithEvents is implemented by aggregates that track domain events.
type AggregateWithEvents interface {
	Events() []Event
	ClearEvents()
}

var _ AggregateWithEvents = (*Pet)(nil)

// Events returns the events recorded since the last ClearEvents.
func (p *Pet) Events() []Event {
	return append([]Event{}, p.events...)
}

// ClearEvents drops the recorded events.
func (p *Pet) ClearEvents() {
	p.events = nil
}

func (p *Pet) record(e Event) {
	p.events = append(p.events, e)
}
