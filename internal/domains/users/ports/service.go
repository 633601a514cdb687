package ports

import (
	"context"

	"github.com/Apurer/pet-registry/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateMobile(ctx context.Context, id int64, mobile string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
