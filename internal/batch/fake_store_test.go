package batch

import (
	"context"
	"fmt"
	"sort"
)

// fakeStore is an in-memory RowStore with injectable failures.
// Not safe for concurrent use; the tests here are sequential.
type fakeStore struct {
	rows []Row

	maxErr  error
	listErr error

	// failBulk, when set, decides whether an InsertRows call fails.
	failBulk func(rows []Row) error
	// failRow, when set, decides whether an InsertRow call fails.
	failRow func(row Row) error

	bulkCalls [][]Row
	rowCalls  []Row
}

func (f *fakeStore) MaxBatchID(ctx context.Context) (int64, error) {
	if f.maxErr != nil {
		return 0, f.maxErr
	}
	var max int64
	for _, r := range f.rows {
		if r.BatchID > max {
			max = r.BatchID
		}
	}
	return max, nil
}

func (f *fakeStore) InsertRows(ctx context.Context, rows []Row) error {
	copied := append([]Row(nil), rows...)
	f.bulkCalls = append(f.bulkCalls, copied)
	if f.failBulk != nil {
		if err := f.failBulk(rows); err != nil {
			return err
		}
	}
	f.rows = append(f.rows, copied...)
	return nil
}

func (f *fakeStore) InsertRow(ctx context.Context, row Row) error {
	f.rowCalls = append(f.rowCalls, row)
	if f.failRow != nil {
		if err := f.failRow(row); err != nil {
			return err
		}
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStore) RowsForBatch(ctx context.Context, batchID int64) ([]RowRecord, error) {
	records := []RowRecord{}
	for i, r := range f.rows {
		if r.BatchID != batchID {
			continue
		}
		records = append(records, RowRecord{
			ID:        int64(i + 1),
			BatchID:   r.BatchID,
			RowNumber: r.RowNumber,
			Payload:   r.Payload,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RowNumber < records[j].RowNumber
	})
	return records, nil
}

func (f *fakeStore) BatchIDs(ctx context.Context) ([]int64, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	seen := map[int64]bool{}
	ids := []int64{}
	for _, r := range f.rows {
		if !seen[r.BatchID] {
			seen[r.BatchID] = true
			ids = append(ids, r.BatchID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids, nil
}

// failRowNumbers returns a failRow hook that fails the given row numbers.
func failRowNumbers(nums ...int) func(Row) error {
	failing := map[int]bool{}
	for _, n := range nums {
		failing[n] = true
	}
	return func(row Row) error {
		if failing[row.RowNumber] {
			return fmt.Errorf("simulated insert failure for row %d", row.RowNumber)
		}
		return nil
	}
}

// failAllBulk returns a failBulk hook that rejects every bulk insert.
func failAllBulk() func([]Row) error {
	return func([]Row) error {
		return fmt.Errorf("simulated bulk insert failure")
	}
}

// payloadsN builds n distinct JSON object payloads.
func payloadsN(n int) []Payload {
	out := make([]Payload, n)
	for i := range out {
		out[i] = Payload(fmt.Sprintf(`{"a":%d}`, i+1))
	}
	return out
}
