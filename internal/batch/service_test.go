package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_IngestEmpty(t *testing.T) {
	svc := NewService(&fakeStore{}, 0, zerolog.Nop())

	_, _, err := svc.Ingest(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "sheetData array cannot be empty")
}

func TestService_IngestAllocatesSequentially(t *testing.T) {
	svc := NewService(&fakeStore{}, 0, zerolog.Nop())
	ctx := context.Background()

	id1, result, err := svc.Ingest(ctx, payloadsN(3))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, 3, result.Inserted)

	id2, _, err := svc.Ingest(ctx, payloadsN(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)
}

func TestService_IngestThenFetchRoundTrip(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs, 0, zerolog.Nop())
	ctx := context.Background()

	payloads := payloadsN(3)
	id, _, err := svc.Ingest(ctx, payloads)
	require.NoError(t, err)

	records, err := svc.Fetch(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.RowNumber)
		assert.JSONEq(t, string(payloads[i]), string(rec.Payload))
	}
}

func TestService_IngestAllocationFailurePropagates(t *testing.T) {
	svc := NewService(&fakeStore{maxErr: errors.New("connection refused")}, 0, zerolog.Nop())

	_, _, err := svc.Ingest(context.Background(), payloadsN(1))
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
}

func TestService_ConsumedIDNeverListed(t *testing.T) {
	// An upload whose every row fails still reports its consumed id to
	// the caller, but the id never shows up in listings because those
	// are derived from surviving rows.
	fs := &fakeStore{failBulk: failAllBulk(), failRow: failRowNumbers(1, 2)}
	svc := NewService(fs, 0, zerolog.Nop())
	ctx := context.Background()

	id, result, err := svc.Ingest(ctx, payloadsN(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 0, result.Inserted)
	assert.Len(t, result.Errors, 2)

	ids, err := svc.ListBatchIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
