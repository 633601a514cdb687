package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	"github.com/Apurer/pet-registry/internal/platform/memtx"
	"github.com/Apurer/pet-registry/internal/shared/projection"
)

var _ ports.PetStore = (*PetStore)(nil)

// PetStore is an in-memory pet store used for demos/tests.
type PetStore struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	byUUID map[string]int64
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewPetStore constructs an empty in-memory store.
func NewPetStore() *PetStore {
	return &PetStore{
		pets:   map[int64]*storedPet{},
		byUUID: map[string]int64{},
		now:    time.Now,
	}
}

// WithClock overrides the clock used for metadata timestamps.
func (s *PetStore) WithClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Save inserts a new pet or updates an existing one when its version is current.
func (s *PetStore) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := s.now()
	if pet.ID == 0 {
		if _, taken := s.byUUID[pet.UUID]; taken {
			return nil, errors.New("pet uuid already registered")
		}
		s.nextID++
		entry := &storedPet{pet: storable(pet), metadata: projection.Created(timestamp)}
		entry.pet.ID = s.nextID
		entry.pet.Version = 1
		s.pets[entry.pet.ID] = entry
		s.byUUID[entry.pet.UUID] = entry.pet.ID
		id, uuid := entry.pet.ID, entry.pet.UUID
		memtx.Record(ctx, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.pets, id)
			delete(s.byUUID, uuid)
		})
		return projectionCopy(entry), nil
	}

	previous, ok := s.pets[pet.ID]
	if !ok {
		return nil, ports.ErrPetNotFound
	}
	if previous.pet.Version != pet.Version {
		return nil, ports.ErrConcurrentModification
	}
	entry := &storedPet{pet: storable(pet), metadata: previous.metadata.Touched(timestamp)}
	entry.pet.UUID = previous.pet.UUID
	entry.pet.Version = previous.pet.Version + 1
	s.pets[pet.ID] = entry
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pets[previous.pet.ID] = previous
	})
	return projectionCopy(entry), nil
}

// FindByID fetches a pet if present.
func (s *PetStore) FindByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.pets[id]
	if !ok {
		return nil, ports.ErrPetNotFound
	}
	return projectionCopy(entry), nil
}

// FindByUUID fetches a pet by its external identifier.
func (s *PetStore) FindByUUID(_ context.Context, uuid string) (*projection.Projection[*domain.Pet], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUUID[uuid]
	if !ok {
		return nil, ports.ErrPetNotFound
	}
	return projectionCopy(s.pets[id]), nil
}

// Delete removes a pet when its version is current.
func (s *PetStore) Delete(ctx context.Context, pet *domain.Pet) error {
	if pet == nil {
		return errors.New("cannot delete nil pet")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pets[pet.ID]
	if !ok {
		return ports.ErrPetNotFound
	}
	if entry.pet.Version != pet.Version {
		return ports.ErrConcurrentModification
	}
	delete(s.pets, pet.ID)
	delete(s.byUUID, entry.pet.UUID)
	memtx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pets[entry.pet.ID] = entry
		s.byUUID[entry.pet.UUID] = entry.pet.ID
	})
	return nil
}

// FindAllByOwner returns the pets registered by the owner.
func (s *PetStore) FindAllByOwner(_ context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	return s.filter(func(p *domain.Pet) bool { return p.OwnerID == ownerID }), nil
}

// FindAllByStatus returns the pets in the given status.
func (s *PetStore) FindAllByStatus(_ context.Context, status domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	return s.filter(func(p *domain.Pet) bool { return p.Status == status }), nil
}

// FindAllByAdopter returns the pets adopted by the user.
func (s *PetStore) FindAllByAdopter(_ context.Context, adopterID int64) ([]*projection.Projection[*domain.Pet], error) {
	return s.filter(func(p *domain.Pet) bool { return p.AdopterID != nil && *p.AdopterID == adopterID }), nil
}

func (s *PetStore) filter(match func(*domain.Pet) bool) []*projection.Projection[*domain.Pet] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*projection.Projection[*domain.Pet]
	for _, entry := range s.pets {
		if match(entry.pet) {
			list = append(list, projectionCopy(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list
}

// storable copies the pet without the adoption record, which the adoption store owns.
func storable(p *domain.Pet) *domain.Pet {
	clone := p.Clone()
	clone.Adoption = nil
	return clone
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return projection.Of(entry.pet.Clone(), entry.metadata)
}
