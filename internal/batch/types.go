package batch

import (
	"context"
	"encoding/json"
	"time"
)

// Payload is one row's document. Rows have no fixed shape; the raw JSON
// bytes are carried end to end so field order survives a round trip.
type Payload = json.RawMessage

// Row is a row tagged for insertion: the batch it belongs to, its
// 1-indexed position within the batch, and its document.
type Row struct {
	BatchID   int64
	RowNumber int
	Payload   Payload
}

// RowRecord is a persisted row as read back from the store.
type RowRecord struct {
	ID        int64     `json:"id"`
	BatchID   int64     `json:"batchId"`
	RowNumber int       `json:"rowNumber"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// RowError records one row that failed to persist. Row failures are
// data, not errors: they ride back in the WriteResult and never abort
// the surrounding write.
type RowError struct {
	// RowIndex is the zero-based position in the submitted list.
	RowIndex int `json:"rowIndex"`
	// RowNumber is the 1-indexed position within the batch.
	RowNumber int `json:"rowNumber"`
	// Payload is the row document that failed to persist.
	Payload Payload `json:"rowData"`
	// Message is the stringified failure reason.
	Message string `json:"error"`
}

// WriteResult describes the outcome of one Write call. For an input of
// N rows, Inserted + len(Errors) == N always holds.
type WriteResult struct {
	Inserted int
	Errors   []RowError
}

// RowStore is the durable relation the allocator, writer, and reader
// operate against. Implementations must enforce uniqueness of
// (batch_id, row_number); InsertRows must be atomic per call, so a
// failed bulk insert leaves none of its rows behind.
type RowStore interface {
	// MaxBatchID returns the largest batch identifier currently present,
	// or 0 when the store is empty.
	MaxBatchID(ctx context.Context) (int64, error)

	// InsertRows persists all given rows as one atomic statement.
	InsertRows(ctx context.Context, rows []Row) error

	// InsertRow persists a single row.
	InsertRow(ctx context.Context, row Row) error

	// RowsForBatch returns all rows with the given batch identifier,
	// ordered by row number ascending. An unknown identifier yields an
	// empty (non-nil) slice, not an error.
	RowsForBatch(ctx context.Context, batchID int64) ([]RowRecord, error)

	// BatchIDs returns the distinct batch identifiers that have at least
	// one row, in descending order.
	BatchIDs(ctx context.Context) ([]int64, error)
}
