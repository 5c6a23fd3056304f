// Package store provides SQLite-backed durable storage for sheet rows.
//
// The store holds a single append-only relation, sheet_rows, keyed by
// an auto-assigned id with a UNIQUE(batch_id, row_number) constraint.
// Rows are created during ingestion and never updated or deleted here;
// retention is out of scope.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - bounded connection pool (default 20): one connection per unit of
//     work; a chunked write holds its connection for its chunk sequence
//
// The Store satisfies batch.RowStore; the ingestion protocol lives in
// internal/batch and only ever appends.
package store
