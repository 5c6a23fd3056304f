package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_EmptyStore(t *testing.T) {
	a := NewAllocator(&fakeStore{})

	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestAllocator_Monotonic(t *testing.T) {
	fs := &fakeStore{}
	a := NewAllocator(fs)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		id, err := a.Allocate(ctx)
		require.NoError(t, err)
		assert.Greater(t, id, prev)

		// Land a row so the next allocation sees the new maximum,
		// mirroring the allocate-then-write control flow.
		require.NoError(t, fs.InsertRow(ctx, Row{BatchID: id, RowNumber: 1, Payload: Payload(`{}`)}))
		prev = id
	}
}

func TestAllocator_NoReservationWithoutWrite(t *testing.T) {
	fs := &fakeStore{}
	a := NewAllocator(fs)
	ctx := context.Background()

	// Allocation alone has no side effect: without a write, repeated
	// calls observe the same maximum.
	id1, err := a.Allocate(ctx)
	require.NoError(t, err)
	id2, err := a.Allocate(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestAllocator_StorageFailure(t *testing.T) {
	a := NewAllocator(&fakeStore{maxErr: errors.New("connection refused")})

	_, err := a.Allocate(context.Background())
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
}

func TestAllocator_InvariantViolation(t *testing.T) {
	a := NewAllocator(overflowStore{&fakeStore{}})

	_, err := a.Allocate(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAllocationInvariant, KindOf(err))
}

// overflowStore reports a maximum that wraps to a non-positive id.
type overflowStore struct {
	*fakeStore
}

func (overflowStore) MaxBatchID(ctx context.Context) (int64, error) {
	return -2, nil
}
