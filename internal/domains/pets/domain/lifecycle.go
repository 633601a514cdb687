package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Transition names an event of the adoption state machine.
type Transition string

const (
	TransitionOfferForAdoption Transition = "offer_for_adoption"
	TransitionFinalizeAdoption Transition = "finalize_adoption"
	TransitionDelete           Transition = "delete"
)

// ErrIllegalTransition is wrapped by every IllegalTransitionError.
var ErrIllegalTransition = errors.New("illegal pet status transition")

// ReasonOfferedForAdoption is the reason reported when deleting a pet that is in adoption.
const ReasonOfferedForAdoption = "pet is currently offered for adoption"

// lifecycle maps each transition to the states it may start from and the state it
// leads to. Delete has no target state.
var lifecycle = map[Transition]map[Status]Status{
	TransitionOfferForAdoption: {StatusOwned: StatusInAdoption},
	TransitionFinalizeAdoption: {StatusInAdoption: StatusAdopted},
	TransitionDelete:           {StatusOwned: "", StatusAdopted: ""},
}

// IllegalTransitionError reports a transition attempted from a state that does not allow it.
type IllegalTransitionError struct {
	Transition Transition
	From       Status
	Reason     string
}

func (e *IllegalTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s pet in status %s: %s", e.Transition, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s pet in status %s", e.Transition, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// CanApply reports whether the transition is legal from the given state.
func CanApply(t Transition, from Status) bool {
	_, ok := lifecycle[t][from]
	return ok
}

func (p *Pet) guard(t Transition) (Status, error) {
	target, ok := lifecycle[t][p.Status]
	if !ok {
		err := &IllegalTransitionError{Transition: t, From: p.Status}
		if t == TransitionDelete && p.Status == StatusInAdoption {
			err.Reason = ReasonOfferedForAdoption
		}
		return "", err
	}
	return target, nil
}

// OfferForAdoption moves an OWNED pet to IN_ADOPTION and returns the new adoption record.
func (p *Pet) OfferForAdoption(description string, at time.Time) (*AdoptionRecord, error) {
	target, err := p.guard(TransitionOfferForAdoption)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	record := &AdoptionRecord{PetID: p.ID, Description: description, CreatedAt: at}
	p.Status = target
	p.Adoption = record
	p.record(PetOfferedForAdoption{BaseEvent: BaseEvent{Timestamp: at}, PetID: p.ID, PetUUID: p.UUID})
	out := *record
	return &out, nil
}

// FinalizeAdoption moves an IN_ADOPTION pet to ADOPTED and records the adopter.
func (p *Pet) FinalizeAdoption(adopterID int64, mobile string, at time.Time) error {
	target, err := p.guard(TransitionFinalizeAdoption)
	if err != nil {
		return err
	}
	if adopterID <= 0 {
		return ErrMissingAdopter
	}
	if adopterID == p.OwnerID {
		return ErrSelfAdoption
	}
	if strings.TrimSpace(mobile) == "" {
		return ErrEmptyMobile
	}
	adopter := adopterID
	p.Status = target
	p.AdopterID = &adopter
	p.record(PetAdopted{
		BaseEvent: BaseEvent{Timestamp: at},
		PetID:     p.ID,
		PetUUID:   p.UUID,
		PetName:   p.Name,
		OwnerID:   p.OwnerID,
		AdopterID: adopterID,
		Mobile:    strings.TrimSpace(mobile),
	})
	return nil
}

// MarkDeleted checks the delete rule and records the deletion.
func (p *Pet) MarkDeleted(at time.Time) error {
	if _, err := p.guard(TransitionDelete); err != nil {
		return err
	}
	p.record(PetDeleted{BaseEvent: BaseEvent{Timestamp: at}, PetID: p.ID, PetUUID: p.UUID})
	return nil
}
