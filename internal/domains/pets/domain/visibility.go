package domain

import "slices"

// VisibleTo computes the pets a user sees in their own listing:
//
//	(ownedByUser \ adoptedGlobally) ∪ adoptedByUser
//
// A user may own pets that are not adopted yet and at the same time have adopted
// pets from other owners, so this is not a plain filter over ownership.
// The result is de-duplicated and ordered by pet id.
func VisibleTo(ownedByUser, adoptedGlobally, adoptedByUser []*Pet) []*Pet {
	adopted := make(map[int64]struct{}, len(adoptedGlobally))
	for _, p := range adoptedGlobally {
		if p != nil {
			adopted[p.ID] = struct{}{}
		}
	}
	seen := map[int64]struct{}{}
	result := make([]*Pet, 0, len(ownedByUser)+len(adoptedByUser))
	add := func(p *Pet) {
		if _, ok := seen[p.ID]; ok {
			return
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	for _, p := range ownedByUser {
		if p == nil {
			continue
		}
		if _, ok := adopted[p.ID]; ok {
			continue
		}
		add(p)
	}
	for _, p := range adoptedByUser {
		if p != nil {
			add(p)
		}
	}
	slices.SortFunc(result, func(a, b *Pet) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return result
}
