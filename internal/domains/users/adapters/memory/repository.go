package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/pet-registry/internal/domains/users/domain"
	"github.com/Apurer/pet-registry/internal/domains/users/ports"
	"github.com/Apurer/pet-registry/internal/platform/memtx"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user store used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]domain.User{}}
}

// Save inserts or replaces a user.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	}
	previous, existed := r.users[clone.ID]
	if !existed && user.ID != 0 {
		return nil, ports.ErrNotFound
	}
	r.users[clone.ID] = clone
	memtx.Record(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if existed {
			r.users[previous.ID] = previous
			return
		}
		delete(r.users, clone.ID)
	})
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &user, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		u := user
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
