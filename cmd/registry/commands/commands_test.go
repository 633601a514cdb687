package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-registry/internal/app"
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

type cli struct {
	t        *testing.T
	registry *app.Registry
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	r, err := app.Build(app.Config{}, app.Dependencies{})
	require.NoError(t, err)
	return &cli{t: t, registry: r}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRoot(func(context.Context) error {
		registry = c.registry
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := execute(root)
	return out.String(), err
}

func (c *cli) mustRun(into any, args ...string) {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	if into != nil {
		require.NoError(c.t, json.Unmarshal([]byte(out), into))
	}
}

type petOutput struct {
	Pet          domain.Pet
	PendingDoses []struct{ ID int64 }
}

func TestAdoptionFlow(t *testing.T) {
	c := newCLI(t)

	var owner, adopter struct{ ID int64 }
	c.mustRun(&owner, "user", "create", "alice", "--email", "alice@example.com")
	c.mustRun(&adopter, "user", "create", "bob", "--email", "bob@example.com")
	ownerID, adopterID := strconv.FormatInt(owner.ID, 10), strconv.FormatInt(adopter.ID, 10)

	var registered petOutput
	c.mustRun(&registered, "pet", "register", "Rex", "--as", ownerID, "--breed", "1", "--dewormed", "--image", "rex.png")
	require.Equal(t, "Rex", registered.Pet.Name)
	require.Equal(t, domain.StatusOwned, registered.Pet.Status)
	require.True(t, registered.Pet.Care.Dewormed)
	require.Equal(t, []string{"rex.png"}, registered.Pet.Images)

	var record domain.AdoptionRecord
	c.mustRun(&record, "pet", "offer", registered.Pet.UUID, "--as", ownerID, "--description", "calm and friendly")
	require.Equal(t, "calm and friendly", record.Description)

	var inAdoption []petOutput
	c.mustRun(&inAdoption, "pet", "list", "--in-adoption")
	require.Len(t, inAdoption, 1)

	var adopted petOutput
	c.mustRun(&adopted, "pet", "adopt", registered.Pet.UUID, "--as", adopterID, "--mobile", "5550001")
	require.Equal(t, domain.StatusAdopted, adopted.Pet.Status)

	var visible []petOutput
	c.mustRun(&visible, "pet", "list", "--as", adopterID)
	require.Len(t, visible, 1)
	require.Equal(t, registered.Pet.UUID, visible[0].Pet.UUID)

	c.mustRun(&visible, "pet", "list", "--as", ownerID)
	require.Empty(t, visible)
}

func TestRegisterRejectsMalformedBirthDate(t *testing.T) {
	c := newCLI(t)
	var owner struct{ ID int64 }
	c.mustRun(&owner, "user", "create", "alice", "--email", "alice@example.com")

	_, err := c.run("pet", "register", "Rex", "--as", strconv.FormatInt(owner.ID, 10), "--breed", "1", "--born", "04/02/2025")
	require.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestDeleteRejectsPetInAdoption(t *testing.T) {
	c := newCLI(t)
	var owner struct{ ID int64 }
	c.mustRun(&owner, "user", "create", "alice", "--email", "alice@example.com")
	ownerID := strconv.FormatInt(owner.ID, 10)

	var registered petOutput
	c.mustRun(&registered, "pet", "register", "Mia", "--as", ownerID, "--breed", "5")
	c.mustRun(nil, "pet", "offer", registered.Pet.UUID, "--as", ownerID, "--description", "indoor cat")

	_, err := c.run("pet", "delete", strconv.FormatInt(registered.Pet.ID, 10), "--as", ownerID)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestBreedsListsCatalog(t *testing.T) {
	c := newCLI(t)
	var breeds []domain.Breed
	c.mustRun(&breeds, "breeds")
	require.NotEmpty(t, breeds)
}

func TestCommandsRequireArguments(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("pet", "show")
	require.Error(t, err)
	_, err = c.run("dose", "administer", "only-one")
	require.Error(t, err)
}

func TestCleanupRunsWhenCommandFails(t *testing.T) {
	r, err := app.Build(app.Config{}, app.Dependencies{})
	require.NoError(t, err)
	var released []string
	root := newRoot(func(context.Context) error {
		registry = r
		cleanup = append(cleanup, func() { released = append(released, "db") }, func() { released = append(released, "temporal") })
		return nil
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"pet", "show", "00000000-0000-0000-0000-000000000000"})

	require.Error(t, execute(root))
	require.Equal(t, []string{"temporal", "db"}, released)
	require.Empty(t, cleanup)
}
