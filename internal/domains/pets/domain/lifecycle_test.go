package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestPet(t *testing.T) *Pet {
	t.Helper()
	pet, err := NewPet("0b7e2c4e-7c1f-4a55-9d1e-5d0c1f3b8a11", "Rex", Breed{ID: 1, Name: "Labrador", Species: SpeciesDog}, testNow.AddDate(0, -6, 0), 7, testNow)
	require.NoError(t, err)
	pet.ID = 42
	return pet
}

func TestNewPet_DefaultsToOwned(t *testing.T) {
	pet := newTestPet(t)
	require.Equal(t, StatusOwned, pet.Status)
	require.Nil(t, pet.AdopterID)
	require.Nil(t, pet.Adoption)
	require.Len(t, pet.Events(), 1)
	require.Equal(t, "pets.pet.registered", pet.Events()[0].EventName())
}

func TestNewPet_Validation(t *testing.T) {
	dog := Breed{ID: 1, Species: SpeciesDog}
	cases := []struct {
		name  string
		uuid  string
		pet   string
		breed Breed
		birth time.Time
		owner int64
		want  error
	}{
		{"blank name", "u", "  ", dog, testNow, 1, ErrEmptyName},
		{"missing owner", "u", "Rex", dog, testNow, 0, ErrMissingOwner},
		{"missing uuid", "", "Rex", dog, testNow, 1, ErrMissingUUID},
		{"unknown species", "u", "Rex", Breed{ID: 3, Species: "BIRD"}, testNow, 1, ErrUnknownBreed},
		{"future birth date", "u", "Rex", dog, testNow.Add(time.Hour), 1, ErrBirthDateInFuture},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPet(tc.uuid, tc.pet, tc.breed, tc.birth, tc.owner, testNow)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOfferForAdoption_FromOwned(t *testing.T) {
	pet := newTestPet(t)

	record, err := pet.OfferForAdoption("  friendly and calm ", testNow)
	require.NoError(t, err)
	require.Equal(t, StatusInAdoption, pet.Status)
	require.Equal(t, "friendly and calm", record.Description)
	require.Equal(t, pet.ID, record.PetID)
	require.NotNil(t, pet.Adoption)
}

func TestOfferForAdoption_IllegalSourceStates(t *testing.T) {
	for _, from := range []Status{StatusInAdoption, StatusAdopted} {
		t.Run(string(from), func(t *testing.T) {
			pet := newTestPet(t)
			pet.Status = from

			record, err := pet.OfferForAdoption("anything", testNow)
			require.Nil(t, record)
			require.ErrorIs(t, err, ErrIllegalTransition)

			var illegal *IllegalTransitionError
			require.True(t, errors.As(err, &illegal))
			require.Equal(t, TransitionOfferForAdoption, illegal.Transition)
			require.Equal(t, from, illegal.From)
			require.Equal(t, from, pet.Status)
		})
	}
}

func TestOfferForAdoption_RequiresDescription(t *testing.T) {
	pet := newTestPet(t)
	_, err := pet.OfferForAdoption(" ", testNow)
	require.ErrorIs(t, err, ErrEmptyDescription)
	require.Equal(t, StatusOwned, pet.Status)
	require.Nil(t, pet.Adoption)
}

func TestFinalizeAdoption(t *testing.T) {
	pet := newTestPet(t)
	_, err := pet.OfferForAdoption("good dog", testNow)
	require.NoError(t, err)
	pet.ClearEvents()

	require.NoError(t, pet.FinalizeAdoption(9, "5550001", testNow))
	require.Equal(t, StatusAdopted, pet.Status)
	require.NotNil(t, pet.AdopterID)
	require.Equal(t, int64(9), *pet.AdopterID)

	events := pet.Events()
	require.Len(t, events, 1)
	adopted, ok := events[0].(PetAdopted)
	require.True(t, ok)
	require.Equal(t, int64(7), adopted.OwnerID)
	require.Equal(t, "5550001", adopted.Mobile)
}

func TestFinalizeAdoption_Rules(t *testing.T) {
	t.Run("from owned", func(t *testing.T) {
		pet := newTestPet(t)
		err := pet.FinalizeAdoption(9, "5550001", testNow)
		require.ErrorIs(t, err, ErrIllegalTransition)
		require.Nil(t, pet.AdopterID)
	})
	t.Run("self adoption", func(t *testing.T) {
		pet := newTestPet(t)
		pet.Status = StatusInAdoption
		require.ErrorIs(t, pet.FinalizeAdoption(7, "5550001", testNow), ErrSelfAdoption)
	})
	t.Run("blank mobile", func(t *testing.T) {
		pet := newTestPet(t)
		pet.Status = StatusInAdoption
		require.ErrorIs(t, pet.FinalizeAdoption(9, " ", testNow), ErrEmptyMobile)
		require.Equal(t, StatusInAdoption, pet.Status)
	})
}

func TestMarkDeleted(t *testing.T) {
	for _, from := range []Status{StatusOwned, StatusAdopted} {
		pet := newTestPet(t)
		pet.Status = from
		require.NoError(t, pet.MarkDeleted(testNow), from)
	}

	pet := newTestPet(t)
	pet.Status = StatusInAdoption
	err := pet.MarkDeleted(testNow)
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Contains(t, err.Error(), ReasonOfferedForAdoption)
}

func TestCanApply(t *testing.T) {
	require.True(t, CanApply(TransitionOfferForAdoption, StatusOwned))
	require.False(t, CanApply(TransitionOfferForAdoption, StatusAdopted))
	require.True(t, CanApply(TransitionFinalizeAdoption, StatusInAdoption))
	require.False(t, CanApply(TransitionFinalizeAdoption, StatusOwned))
	require.True(t, CanApply(TransitionDelete, StatusAdopted))
	require.False(t, CanApply(TransitionDelete, StatusInAdoption))
}

func TestClone_IsDeep(t *testing.T) {
	pet := newTestPet(t)
	pet.ReplaceImages([]string{"a.png"})
	adopter := int64(3)
	pet.AdopterID = &adopter

	clone := pet.Clone()
	clone.Images[0] = "b.png"
	*clone.AdopterID = 4

	require.Equal(t, "a.png", pet.Images[0])
	require.Equal(t, int64(3), *pet.AdopterID)
	require.Empty(t, clone.Events())
}
