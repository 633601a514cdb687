// Package memtx gives in-memory stores all-or-nothing semantics inside a unit of work.
//
// Stores call Record with an undo function for every mutation. When the unit of work
// fails, the recorded undo functions run in reverse order. Outside a unit of work
// Record is a no-op.
package memtx

import (
	"context"
	"sync"
)

type ctxKey struct{}

var journalKey = ctxKey{}

type journal struct {
	mu   sync.Mutex
	undo []func()
}

// Record registers an undo function with the unit of work active in ctx, if any.
// The undo function must acquire whatever locks it needs itself.
func Record(ctx context.Context, undo func()) {
	j, ok := ctx.Value(journalKey).(*journal)
	if !ok || undo == nil {
		return
	}
	j.mu.Lock()
	j.undo = append(j.undo, undo)
	j.mu.Unlock()
}

// Active reports whether ctx carries a unit of work.
func Active(ctx context.Context) bool {
	_, ok := ctx.Value(journalKey).(*journal)
	return ok
}

func (j *journal) rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// UnitOfWork serializes units of work over in-memory stores and rolls back on error.
type UnitOfWork struct {
	mu sync.Mutex
}

// NewUnitOfWork builds an in-memory unit of work.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

// Do runs fn inside a unit of work. Nested calls join the outer unit.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if Active(ctx) {
		return fn(ctx)
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	j := &journal{}
	defer func() {
		if r := recover(); r != nil {
			j.rollback()
			panic(r)
		}
		if err != nil {
			j.rollback()
		}
	}()
	return fn(context.WithValue(ctx, journalKey, j))
}
