package batch

import (
	"context"
	"fmt"
)

// Allocator computes the next unused batch identifier from the store's
// current maximum.
//
// Allocation has no side effect: the identifier is only reserved once
// the subsequent write lands a row carrying it. There is no locking
// across concurrent allocators (see the package comment).
type Allocator struct {
	store RowStore
}

// NewAllocator creates an Allocator backed by the given store.
func NewAllocator(store RowStore) *Allocator {
	return &Allocator{store: store}
}

// Allocate returns max(existing batch id) + 1, or 1 for an empty store.
func (a *Allocator) Allocate(ctx context.Context) (int64, error) {
	max, err := a.store.MaxBatchID(ctx)
	if err != nil {
		return 0, WrapError(KindStorageUnavailable, "allocate batch id", err)
	}

	next := max + 1
	if next <= 0 {
		// Defensive check against a malformed storage response.
		return 0, NewError(KindAllocationInvariant,
			fmt.Sprintf("allocated batch id %d is not a positive integer", next))
	}

	return next, nil
}
