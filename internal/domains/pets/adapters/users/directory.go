package users

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	userdomain "github.com/Apurer/pet-registry/internal/domains/users/domain"
	userports "github.com/Apurer/pet-registry/internal/domains/users/ports"
)

var _ ports.UserDirectory = (*Directory)(nil)

// Directory exposes the users context to the pets context.
type Directory struct {
	users userports.Service
}

func NewDirectory(users userports.Service) *Directory {
	return &Directory{users: users}
}

// FindByID returns the contact data of a user.
func (d *Directory) FindByID(ctx context.Context, id int64) (*ports.Contact, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return toContact(user), nil
}

// UpdateMobile stores the adopter's contact number.
func (d *Directory) UpdateMobile(ctx context.Context, id int64, mobile string) error {
	_, err := d.users.UpdateMobile(ctx, id, mobile)
	return translate(err)
}

func translate(err error) error {
	if errors.Is(err, userports.ErrNotFound) {
		return errors.Join(ports.ErrUserNotFound, err)
	}
	return err
}

func toContact(u *userdomain.User) *ports.Contact {
	return &ports.Contact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Mobile:    u.Mobile,
	}
}
