package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	"github.com/Apurer/pet-registry/internal/platform/memtx"
)

var _ ports.AdoptionStore = (*AdoptionStore)(nil)

// AdoptionStore keeps one adoption record per pet.
type AdoptionStore struct {
	mu      sync.RWMutex
	records map[int64]domain.AdoptionRecord
}

// NewAdoptionStore constructs an empty in-memory store.
func NewAdoptionStore() *AdoptionStore {
	return &AdoptionStore{records: map[int64]domain.AdoptionRecord{}}
}

// Save inserts or replaces the record of a pet.
func (s *AdoptionStore) Save(ctx context.Context, record *domain.AdoptionRecord) (*domain.AdoptionRecord, error) {
	if record == nil || record.PetID == 0 {
		return nil, errors.New("adoption record must reference a pet")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	petID := record.PetID
	previous, existed := s.records[petID]
	s.records[petID] = *record
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.records[petID] = previous
			return
		}
		delete(s.records, petID)
	})
	out := *record
	return &out, nil
}

// FindByPet fetches the record of a pet.
func (s *AdoptionStore) FindByPet(_ context.Context, petID int64) (*domain.AdoptionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[petID]
	if !ok {
		return nil, ports.ErrAdoptionNotFound
	}
	return &record, nil
}

// DeleteByPet removes the record of a pet if there is one.
func (s *AdoptionStore) DeleteByPet(ctx context.Context, petID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, existed := s.records[petID]
	if !existed {
		return nil
	}
	delete(s.records, petID)
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.records[petID] = previous
	})
	return nil
}
