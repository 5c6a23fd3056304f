package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/sheetstore/internal/batch"
)

// createTestStore creates a file-backed store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRow creates a row with a payload derived from its position.
func testRow(batchID int64, rowNumber int) batch.Row {
	return batch.Row{
		BatchID:   batchID,
		RowNumber: rowNumber,
		Payload:   batch.Payload(fmt.Sprintf(`{"n":%d}`, rowNumber)),
	}
}

// testRows creates rows 1..n for a batch.
func testRows(batchID int64, n int) []batch.Row {
	rows := make([]batch.Row, n)
	for i := range rows {
		rows[i] = testRow(batchID, i+1)
	}
	return rows
}
