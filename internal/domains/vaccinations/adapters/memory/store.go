package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	"github.com/Apurer/pet-registry/internal/domains/vaccinations/ports"
	"github.com/Apurer/pet-registry/internal/platform/memtx"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory dose store used for demos/tests.
type Store struct {
	mu     sync.RWMutex
	doses  map[int64]domain.Dose
	nextID int64
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{doses: map[int64]domain.Dose{}}
}

// Save inserts or replaces a dose.
func (s *Store) Save(ctx context.Context, dose *domain.Dose) (*domain.Dose, error) {
	if dose == nil {
		return nil, errors.New("cannot save nil dose")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *dose
	if stored.ID == 0 {
		s.nextID++
		stored.ID = s.nextID
	}
	previous, existed := s.doses[stored.ID]
	if !existed && dose.ID != 0 {
		return nil, ports.ErrDoseNotFound
	}
	s.doses[stored.ID] = stored
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.doses[stored.ID] = previous
			return
		}
		delete(s.doses, stored.ID)
	})
	out := stored
	return &out, nil
}

// FindByID fetches a dose if present.
func (s *Store) FindByID(_ context.Context, id int64) (*domain.Dose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dose, ok := s.doses[id]
	if !ok {
		return nil, ports.ErrDoseNotFound
	}
	return &dose, nil
}

// FindAllByPet returns the pet's doses ordered by id.
func (s *Store) FindAllByPet(_ context.Context, petID int64) ([]*domain.Dose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*domain.Dose
	for _, dose := range s.doses {
		if dose.PetID == petID {
			d := dose
			list = append(list, &d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// DeleteAllByPet removes every dose of the pet.
func (s *Store) DeleteAllByPet(ctx context.Context, petID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := map[int64]domain.Dose{}
	for id, dose := range s.doses {
		if dose.PetID == petID {
			removed[id] = dose
			delete(s.doses, id)
		}
	}
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, dose := range removed {
			s.doses[id] = dose
		}
	})
	return nil
}
