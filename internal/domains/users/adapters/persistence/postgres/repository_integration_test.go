//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userpostgres "github.com/Apurer/pet-registry/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/pet-registry/internal/domains/users/domain"
	"github.com/Apurer/pet-registry/internal/domains/users/ports"
	"github.com/Apurer/pet-registry/internal/platform/postgres/pgtest"
)

func TestPostgresRepository_SaveAndGet(t *testing.T) {
	db := pgtest.Start(t)
	repo := userpostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.User{Username: "josdem", FirstName: "Jose", LastName: "Morales", Email: "josdem@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	byName, err := repo.GetByUsername(ctx, "josdem")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	require.NoError(t, byName.UpdateMobile("5550001"))
	updated, err := repo.Save(ctx, byName)
	require.NoError(t, err)
	assert.Equal(t, "5550001", updated.Mobile)

	_, err = repo.GetByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.Save(ctx, &domain.User{ID: saved.ID + 100, Username: "ghost"})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
