package batch

import (
	"context"

	"github.com/rs/zerolog"
)

// Service ties the allocator, writer, and reader together behind the
// surface the HTTP layer consumes.
type Service struct {
	allocator *Allocator
	writer    *Writer
	reader    *Reader
	log       zerolog.Logger
}

// NewService creates a Service over the given store. A chunkSize of
// zero or less selects DefaultChunkSize.
func NewService(store RowStore, chunkSize int, log zerolog.Logger) *Service {
	return &Service{
		allocator: NewAllocator(store),
		writer:    NewWriter(store, chunkSize, log),
		reader:    NewReader(store),
		log:       log,
	}
}

// Ingest allocates a batch identifier for payloads and persists them.
// The identifier is returned even when rows failed; once allocation has
// happened the caller must be told which id was consumed.
func (s *Service) Ingest(ctx context.Context, payloads []Payload) (int64, WriteResult, error) {
	if len(payloads) == 0 {
		return 0, WriteResult{}, NewError(KindValidation, "sheetData array cannot be empty")
	}

	batchID, err := s.allocator.Allocate(ctx)
	if err != nil {
		return 0, WriteResult{}, err
	}

	result, err := s.writer.Write(ctx, batchID, payloads)
	if err != nil {
		return batchID, WriteResult{}, err
	}

	s.log.Info().Int64("batch_id", batchID).
		Int("inserted", result.Inserted).Int("failed", len(result.Errors)).
		Msg("batch ingested")
	return batchID, result, nil
}

// Fetch returns a batch's rows ordered by row number.
func (s *Service) Fetch(ctx context.Context, batchID int64) ([]RowRecord, error) {
	return s.reader.Fetch(ctx, batchID)
}

// ListBatchIDs returns known batch identifiers in descending order.
func (s *Service) ListBatchIDs(ctx context.Context) ([]int64, error) {
	return s.reader.ListBatchIDs(ctx)
}
