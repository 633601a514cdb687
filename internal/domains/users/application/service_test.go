package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	usermemory "github.com/Apurer/pet-registry/internal/domains/users/adapters/memory"
	"github.com/Apurer/pet-registry/internal/domains/users/domain"
	"github.com/Apurer/pet-registry/internal/domains/users/ports"
)

func TestCreateUser_AssignsID(t *testing.T) {
	svc := NewService(usermemory.NewRepository())

	user, err := svc.CreateUser(context.Background(), &domain.User{Username: "miriam", Email: "miriam@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	loaded, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "miriam", loaded.Username)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := NewService(usermemory.NewRepository())

	_, err := svc.CreateUser(context.Background(), &domain.User{Username: " "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(context.Background(), &domain.User{Username: "josdem", Email: "not-an-email"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateUser_RejectsDuplicateUsername(t *testing.T) {
	svc := NewService(usermemory.NewRepository())
	_, err := svc.CreateUser(context.Background(), &domain.User{Username: "josdem"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &domain.User{Username: "josdem"})
	require.ErrorIs(t, err, ports.ErrUsernameTaken)
}

func TestUpdateMobile(t *testing.T) {
	svc := NewService(usermemory.NewRepository())
	user, err := svc.CreateUser(context.Background(), &domain.User{Username: "josdem"})
	require.NoError(t, err)

	updated, err := svc.UpdateMobile(context.Background(), user.ID, " 5550001 ")
	require.NoError(t, err)
	require.Equal(t, "5550001", updated.Mobile)

	_, err = svc.UpdateMobile(context.Background(), user.ID, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateMobile(context.Background(), 99, "5550001")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
