package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func idsOf(pets []*Pet) []int64 {
	ids := make([]int64, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestVisibleTo_OwnedMinusAdoptedUnionAdoptedByUser(t *testing.T) {
	user, other, someoneElse := int64(1), int64(2), int64(3)

	// user owns A and B, B was adopted by someone else, user adopted C from other.
	a := &Pet{ID: 10, OwnerID: user, Status: StatusOwned}
	b := &Pet{ID: 11, OwnerID: user, Status: StatusAdopted, AdopterID: &someoneElse}
	c := &Pet{ID: 20, OwnerID: other, Status: StatusAdopted, AdopterID: &user}

	visible := VisibleTo(
		[]*Pet{b, a},
		[]*Pet{b, c},
		[]*Pet{c},
	)
	require.Equal(t, []int64{10, 20}, idsOf(visible))
}

func TestVisibleTo_DeduplicatesAndIgnoresNil(t *testing.T) {
	a := &Pet{ID: 5}
	visible := VisibleTo([]*Pet{a, nil, a}, nil, []*Pet{a, nil})
	require.Equal(t, []int64{5}, idsOf(visible))
}

func TestVisibleTo_Empty(t *testing.T) {
	require.Empty(t, VisibleTo(nil, nil, nil))
}
