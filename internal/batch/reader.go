package batch

import (
	"context"
	"fmt"
)

// Reader reconstructs batches from the store.
type Reader struct {
	store RowStore
}

// NewReader creates a Reader backed by the given store.
func NewReader(store RowStore) *Reader {
	return &Reader{store: store}
}

// Fetch returns all rows of a batch ordered by row number ascending.
// Ordering follows row numbers, not storage-assigned ids, which may
// differ when degraded insertion reordered arrival.
//
// An empty result is a valid outcome. The reader cannot distinguish a
// batch that never existed from one whose every row failed; translating
// empty into "not found" is the caller's call.
func (r *Reader) Fetch(ctx context.Context, batchID int64) ([]RowRecord, error) {
	if batchID <= 0 {
		return nil, NewError(KindValidation,
			fmt.Sprintf("batch id must be a positive integer, got %d", batchID))
	}

	records, err := r.store.RowsForBatch(ctx, batchID)
	if err != nil {
		return nil, WrapError(KindStorageUnavailable, "fetch batch rows", err)
	}
	return records, nil
}

// ListBatchIDs returns the distinct batch identifiers that currently
// have at least one row, in descending order. The list is derived, not
// stored: an identifier whose every row failed at insertion never
// appears.
func (r *Reader) ListBatchIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.store.BatchIDs(ctx)
	if err != nil {
		return nil, WrapError(KindStorageUnavailable, "list batch ids", err)
	}
	return ids, nil
}
