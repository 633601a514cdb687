package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrNotFound signals a referenced pet, breed, user or dose does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIllegalTransition is the lifecycle sentinel, re-exported for callers of this package.
	ErrIllegalTransition = domain.ErrIllegalTransition
	// ErrConflict signals the pet changed between load and save.
	ErrConflict = errors.New("conflicting pet update")
	// ErrCollaborator signals a downstream collaborator failed after the domain decision.
	ErrCollaborator = errors.New("collaborator failure")
)

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	Key      any
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

// Unwrap exposes both ErrNotFound and the store sentinel.
func (e *NotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Err}
}

// CollaboratorError reports a failure in a collaborator that ran after the unit of work
// committed. The committed state is not rolled back.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

// Unwrap exposes both ErrCollaborator and the cause.
func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaborator, e.Err}
}

func notFound(resource string, key any, err error) error {
	return &NotFoundError{Resource: resource, Key: key, Err: err}
}

func lookupError(resource string, key any, err error) error {
	switch {
	case errors.Is(err, ports.ErrPetNotFound),
		errors.Is(err, ports.ErrBreedNotFound),
		errors.Is(err, ports.ErrUserNotFound):
		return notFound(resource, key, err)
	}
	return err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrMissingOwner),
		errors.Is(err, domain.ErrMissingUUID),
		errors.Is(err, domain.ErrUnknownBreed),
		errors.Is(err, domain.ErrBirthDateInFuture),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrEmptyMobile),
		errors.Is(err, domain.ErrMissingAdopter),
		errors.Is(err, domain.ErrSelfAdoption),
		errors.Is(err, vaccdomain.ErrAlreadyAdministered):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrConcurrentModification):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
