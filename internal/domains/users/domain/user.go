package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyMobile   = errors.New("mobile is required")
)

// User is a registry account. Owners and adopters are users.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
}

// NewUser builds a user ensuring required invariants.
func NewUser(username, email string) (*User, error) {
	user := &User{}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile("", "", email); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// UpdateProfile applies the name fields and validates email if present.
func (u *User) UpdateProfile(firstName, lastName, email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Email = email
	return nil
}

// UpdateMobile records the contact number supplied when adopting a pet.
func (u *User) UpdateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return ErrEmptyMobile
	}
	u.Mobile = mobile
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	return u.UpdateProfile(u.FirstName, u.LastName, u.Email)
}
