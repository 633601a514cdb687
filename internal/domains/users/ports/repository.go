package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/domains/users/domain"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already registered")
)

type Repository interface {
	// Save inserts the user when ID is zero and updates it otherwise.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
