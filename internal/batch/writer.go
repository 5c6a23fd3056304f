package batch

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultChunkSize is the number of rows per second-tier bulk statement.
// Datasets at or below this size attempt a single bulk write first;
// larger datasets skip straight to chunked writing.
const DefaultChunkSize = 5000

// Writer persists an ordered row list for one batch.
//
// Writes degrade through three tiers: one bulk statement for the whole
// set, fixed-size chunks, then individual rows. A failure at one tier
// narrows the write unit instead of aborting, so the result always
// accounts for every input row. A row is fully written or fully absent;
// partial documents cannot occur because each statement is atomic.
type Writer struct {
	store     RowStore
	chunkSize int
	log       zerolog.Logger
}

// NewWriter creates a Writer backed by the given store. A chunkSize
// of zero or less selects DefaultChunkSize.
func NewWriter(store RowStore, chunkSize int, log zerolog.Logger) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Writer{store: store, chunkSize: chunkSize, log: log}
}

// Write persists payloads under batchID, assigning row numbers from
// input order (element i becomes row i+1).
//
// The returned error is non-nil only for invalid input. Storage
// failures surface as RowError entries in the result: even a write
// where every row failed returns a nil error, because the batch id has
// already been consumed and the caller must not conclude that nothing
// happened.
func (w *Writer) Write(ctx context.Context, batchID int64, payloads []Payload) (WriteResult, error) {
	if len(payloads) == 0 {
		return WriteResult{}, NewError(KindValidation, "rows cannot be empty")
	}

	rows := make([]Row, len(payloads))
	for i, p := range payloads {
		rows[i] = Row{BatchID: batchID, RowNumber: i + 1, Payload: p}
	}

	// A single statement covering the whole set is the cheapest path,
	// but a guaranteed-to-fail giant statement is not worth attempting.
	if len(rows) <= w.chunkSize {
		err := w.store.InsertRows(ctx, rows)
		if err == nil {
			return WriteResult{Inserted: len(rows)}, nil
		}
		w.log.Warn().Err(err).Int64("batch_id", batchID).Int("rows", len(rows)).
			Msg("bulk insert failed, degrading to per-row writes")
		result := WriteResult{}
		w.writeRows(ctx, rows, 0, &result)
		return result, nil
	}

	result := WriteResult{}
	for start := 0; start < len(rows); start += w.chunkSize {
		end := min(start+w.chunkSize, len(rows))
		chunk := rows[start:end]

		if err := w.store.InsertRows(ctx, chunk); err != nil {
			w.log.Warn().Err(err).Int64("batch_id", batchID).
				Int("chunk_start", start).Int("chunk_len", len(chunk)).
				Msg("chunk insert failed, degrading to per-row writes")
			w.writeRows(ctx, chunk, start, &result)
			continue
		}
		result.Inserted += len(chunk)
	}

	return result, nil
}

// writeRows inserts rows one at a time, recording each failure against
// the row's zero-based position in the original input (offset + local
// index). No failure stops the remaining rows.
func (w *Writer) writeRows(ctx context.Context, rows []Row, offset int, result *WriteResult) {
	for i, row := range rows {
		if err := w.store.InsertRow(ctx, row); err != nil {
			result.Errors = append(result.Errors, RowError{
				RowIndex:  offset + i,
				RowNumber: row.RowNumber,
				Payload:   row.Payload,
				Message:   err.Error(),
			})
			continue
		}
		result.Inserted++
	}
}
