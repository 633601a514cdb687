package application

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/domains/users/domain"
	"github.com/Apurer/pet-registry/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a new account. Usernames are unique.
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByUsername(ctx, user.Username); err == nil {
		return nil, ports.ErrUsernameTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	clone := *user
	clone.ID = 0
	return s.repo.Save(ctx, &clone)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdateMobile stores a new contact number for the user.
func (s *Service) UpdateMobile(ctx context.Context, id int64, mobile string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateMobile(mobile); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
