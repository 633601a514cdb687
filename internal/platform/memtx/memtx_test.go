package memtx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollsBackInReverseOrder(t *testing.T) {
	uow := NewUnitOfWork()
	var order []int
	boom := errors.New("boom")

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		require.True(t, Active(ctx))
		Record(ctx, func() { order = append(order, 1) })
		Record(ctx, func() { order = append(order, 2) })
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []int{2, 1}, order)
}

func TestUnitOfWork_CommitKeepsChanges(t *testing.T) {
	uow := NewUnitOfWork()
	undone := false
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		Record(ctx, func() { undone = true })
		return nil
	})
	require.NoError(t, err)
	require.False(t, undone)
}

func TestUnitOfWork_NestedJoinsOuter(t *testing.T) {
	uow := NewUnitOfWork()
	undone := 0
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, uow.Do(ctx, func(inner context.Context) error {
			Record(inner, func() { undone++ })
			return nil
		}))
		return errors.New("outer failed")
	})
	require.Error(t, err)
	require.Equal(t, 1, undone)
}

func TestRecord_OutsideUnitOfWorkIsNoop(t *testing.T) {
	called := false
	Record(context.Background(), func() { called = true })
	require.False(t, Active(context.Background()))
	require.False(t, called)
}
