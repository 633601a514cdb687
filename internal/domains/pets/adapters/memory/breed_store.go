package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
)

var _ ports.BreedStore = (*BreedStore)(nil)

// BreedStore is a read-mostly breed catalog.
type BreedStore struct {
	mu     sync.RWMutex
	breeds map[int64]domain.Breed
}

// NewBreedStore seeds the catalog with the given breeds.
func NewBreedStore(breeds ...domain.Breed) *BreedStore {
	s := &BreedStore{breeds: make(map[int64]domain.Breed, len(breeds))}
	for _, b := range breeds {
		s.breeds[b.ID] = b
	}
	return s
}

// Add registers or replaces a breed.
func (s *BreedStore) Add(breed domain.Breed) {
	s.mu.Lock()
	s.breeds[breed.ID] = breed
	s.mu.Unlock()
}

// FindByID resolves a breed reference.
func (s *BreedStore) FindByID(_ context.Context, id int64) (*domain.Breed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	breed, ok := s.breeds[id]
	if !ok {
		return nil, ports.ErrBreedNotFound
	}
	return &breed, nil
}

// List returns the catalog ordered by id.
func (s *BreedStore) List(_ context.Context) ([]*domain.Breed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Breed, 0, len(s.breeds))
	for _, b := range s.breeds {
		breed := b
		list = append(list, &breed)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
