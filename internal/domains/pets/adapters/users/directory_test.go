package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	usermemory "github.com/Apurer/pet-registry/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/pet-registry/internal/domains/users/application"
	userdomain "github.com/Apurer/pet-registry/internal/domains/users/domain"
	userports "github.com/Apurer/pet-registry/internal/domains/users/ports"
)

func TestDirectory(t *testing.T) {
	svc := userapp.NewService(usermemory.NewRepository())
	created, err := svc.CreateUser(context.Background(), &userdomain.User{Username: "miriam", FirstName: "Miriam", LastName: "Lopez", Email: "miriam@example.com"})
	require.NoError(t, err)

	dir := NewDirectory(svc)
	contact, err := dir.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Miriam Lopez", contact.FullName())

	require.NoError(t, dir.UpdateMobile(context.Background(), created.ID, "5550002"))
	contact, err = dir.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "5550002", contact.Mobile)

	_, err = dir.FindByID(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
	require.ErrorIs(t, err, userports.ErrNotFound)
}
