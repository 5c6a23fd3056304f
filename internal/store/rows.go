package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/sheetstore/internal/batch"
)

// MaxBatchID returns the largest batch identifier present, or 0 when
// the store holds no rows.
func (s *Store) MaxBatchID(ctx context.Context) (int64, error) {
	var max int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(batch_id), 0) FROM sheet_rows
	`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max batch id: %w", err)
	}
	return max, nil
}

// InsertRows persists all given rows as one multi-row INSERT.
//
// SQLite aborts and rolls back the whole statement on any constraint
// violation, so a failed call leaves none of its rows behind. That
// atomicity is what the writer's degradation tiers rely on.
func (s *Store) InsertRows(ctx context.Context, rows []batch.Row) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO sheet_rows (batch_id, row_number, payload) VALUES `)
	args := make([]any, 0, len(rows)*3)
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("(?, ?, ?)")
		args = append(args, row.BatchID, row.RowNumber, string(row.Payload))
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d rows: %w", len(rows), err)
	}
	return nil
}

// InsertRow persists a single row.
func (s *Store) InsertRow(ctx context.Context, row batch.Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sheet_rows (batch_id, row_number, payload)
		VALUES (?, ?, ?)
	`, row.BatchID, row.RowNumber, string(row.Payload))
	if err != nil {
		return fmt.Errorf("insert row %d of batch %d: %w", row.RowNumber, row.BatchID, err)
	}
	return nil
}

// RowsForBatch returns all rows with the given batch identifier ordered
// by row number ascending. Row numbers, not storage ids, carry the
// original submission order once degraded insertion has reordered
// arrival.
//
// Returns an empty slice (not nil) if no rows exist for the batch.
func (s *Store) RowsForBatch(ctx context.Context, batchID int64) ([]batch.RowRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, row_number, payload, created_at
		FROM sheet_rows
		WHERE batch_id = ?
		ORDER BY row_number ASC
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch rows: %w", err)
	}
	defer rows.Close()

	var records []batch.RowRecord
	for rows.Next() {
		var rec batch.RowRecord
		var payload string
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.RowNumber, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Payload = batch.Payload(payload)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch rows: %w", err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []batch.RowRecord{}
	}

	return records, nil
}

// BatchIDs returns the distinct batch identifiers that have at least
// one row, in descending order. Derived from existing rows: an
// identifier whose every row failed at insertion never appears.
func (s *Store) BatchIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT batch_id
		FROM sheet_rows
		ORDER BY batch_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query batch ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan batch id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch ids: %w", err)
	}

	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// CountRows returns the number of rows persisted under a batch.
func (s *Store) CountRows(ctx context.Context, batchID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sheet_rows WHERE batch_id = ?
	`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count batch rows: %w", err)
	}
	return count, nil
}
