package ports

import (
	"context"
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")

// Contact is the part of a user the pets context needs.
type Contact struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// UserDirectory is the pets view of the users context.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*Contact, error)
	UpdateMobile(ctx context.Context, id int64, mobile string) error
}
