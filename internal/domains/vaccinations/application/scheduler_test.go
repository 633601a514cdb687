package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
	vaccmemory "github.com/Apurer/pet-registry/internal/domains/vaccinations/adapters/memory"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/ports"
)

var fixedNow = time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)

func newScheduler(store ports.Store, opts ...Option) *Scheduler {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewScheduler(store, domain.DefaultStrategies(domain.DefaultCatalog()), opts...)
}

func weeksAgo(weeks int) time.Time {
	return fixedNow.AddDate(0, 0, -7*weeks)
}

func doseNames(doses []*domain.Dose) []string {
	names := make([]string, 0, len(doses))
	for _, d := range doses {
		names = append(names, d.Name)
	}
	return names
}

func TestSchedule_DogTenWeeks(t *testing.T) {
	store := vaccmemory.NewStore()
	scheduler := newScheduler(store)

	doses, err := scheduler.Schedule(context.Background(), domain.Subject{PetID: 1, Species: petdomain.SpeciesDog, BirthDate: weeksAgo(10)})
	require.NoError(t, err)
	require.Equal(t, []string{domain.DA2PP, domain.Deworming}, doseNames(doses))
	for _, d := range doses {
		require.Equal(t, domain.DoseStatusPending, d.Status)
		require.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), d.ScheduledOn)
		require.NotZero(t, d.ID)
	}

	stored, err := store.FindAllByPet(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestSchedule_DoseCountsPerBracket(t *testing.T) {
	cases := []struct {
		species petdomain.Species
		weeks   int
		count   int
	}{
		{petdomain.SpeciesDog, 3, 0},
		{petdomain.SpeciesDog, 12, 2},
		{petdomain.SpeciesDog, 13, 3},
		{petdomain.SpeciesDog, 17, 5},
		{petdomain.SpeciesCat, 8, 0},
		{petdomain.SpeciesCat, 9, 2},
		{petdomain.SpeciesCat, 16, 2},
		{petdomain.SpeciesCat, 40, 3},
	}
	for _, tc := range cases {
		scheduler := newScheduler(vaccmemory.NewStore())
		doses, err := scheduler.Schedule(context.Background(), domain.Subject{PetID: 5, Species: tc.species, BirthDate: weeksAgo(tc.weeks)})
		require.NoError(t, err)
		require.Len(t, doses, tc.count, "%s at %d weeks", tc.species, tc.weeks)
	}
}

func TestSchedule_StrategyNotFound(t *testing.T) {
	store := vaccmemory.NewStore()
	scheduler := NewScheduler(store, map[petdomain.Species]domain.Strategy{
		petdomain.SpeciesDog: domain.NewDogStrategy(domain.DefaultCatalog()),
	})

	_, err := scheduler.Schedule(context.Background(), domain.Subject{PetID: 2, Species: petdomain.SpeciesCat, BirthDate: weeksAgo(20)})
	require.ErrorIs(t, err, ErrConfiguration)
	var notFound *StrategyNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, petdomain.SpeciesCat, notFound.Species)

	stored, err := store.FindAllByPet(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSchedule_TableIsFixedAtConstruction(t *testing.T) {
	table := map[petdomain.Species]domain.Strategy{}
	scheduler := NewScheduler(vaccmemory.NewStore(), table)
	table[petdomain.SpeciesDog] = domain.NewDogStrategy(domain.DefaultCatalog())

	_, err := scheduler.Schedule(context.Background(), domain.Subject{PetID: 1, Species: petdomain.SpeciesDog, BirthDate: weeksAgo(10)})
	require.ErrorIs(t, err, ErrConfiguration)
}

// Rescheduling the same pet books the whole bracket again unless idempotent
// scheduling is enabled.
func TestSchedule_RescheduleDoubleBooks(t *testing.T) {
	store := vaccmemory.NewStore()
	scheduler := newScheduler(store)
	subject := domain.Subject{PetID: 3, Species: petdomain.SpeciesDog, BirthDate: weeksAgo(10)}

	_, err := scheduler.Schedule(context.Background(), subject)
	require.NoError(t, err)
	_, err = scheduler.Schedule(context.Background(), subject)
	require.NoError(t, err)

	stored, err := store.FindAllByPet(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, stored, 4)
}

func TestSchedule_IdempotentSkipsRecordedNames(t *testing.T) {
	store := vaccmemory.NewStore()
	scheduler := newScheduler(store, WithIdempotentScheduling(true))
	subject := domain.Subject{PetID: 4, Species: petdomain.SpeciesDog, BirthDate: weeksAgo(10)}

	first, err := scheduler.Schedule(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, first, 2)
	_, err = scheduler.MarkAdministered(context.Background(), first[0].ID)
	require.NoError(t, err)

	second, err := scheduler.Schedule(context.Background(), subject)
	require.NoError(t, err)
	require.Empty(t, second)

	subject.BirthDate = weeksAgo(14)
	third, err := scheduler.Schedule(context.Background(), subject)
	require.NoError(t, err)
	require.Equal(t, []string{domain.Leptospirosis}, doseNames(third))
}

func TestPendingFor_ExcludesAdministered(t *testing.T) {
	store := vaccmemory.NewStore()
	scheduler := newScheduler(store)
	doses, err := scheduler.Schedule(context.Background(), domain.Subject{PetID: 6, Species: petdomain.SpeciesCat, BirthDate: weeksAgo(30)})
	require.NoError(t, err)
	require.Len(t, doses, 3)

	administered, err := scheduler.MarkAdministered(context.Background(), doses[1].ID)
	require.NoError(t, err)
	require.Equal(t, domain.DoseStatusAdministered, administered.Status)

	_, err = scheduler.MarkAdministered(context.Background(), doses[1].ID)
	require.ErrorIs(t, err, domain.ErrAlreadyAdministered)

	pending, err := scheduler.PendingFor(context.Background(), 6)
	require.NoError(t, err)
	require.Equal(t, []string{domain.FVRCP, domain.Rabies}, doseNames(pending))

	all, err := scheduler.ListFor(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, scheduler.DeleteFor(context.Background(), 6))
	all, err = scheduler.ListFor(context.Background(), 6)
	require.NoError(t, err)
	require.Empty(t, all)
}
