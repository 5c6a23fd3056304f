// Package batch implements the batch ingestion protocol for sheet rows.
//
// A batch is the set of rows persisted by one upload. Batches have no
// entity of their own: a batch exists exactly when at least one row
// carries its identifier. Identifiers are monotonically increasing
// integers starting at 1, computed as max(existing)+1 at allocation
// time, and are never reused even when every row of a batch fails.
//
// The package is built from three collaborators, each taking the row
// store as an injected dependency:
//
//   - Allocator: computes the next unused batch identifier.
//   - Writer: persists an ordered row list with three-tier degradation
//     (single bulk statement, fixed-size chunks, individual rows),
//     collecting per-row failures as data instead of aborting.
//   - Reader: reconstructs a batch in row-number order and lists the
//     identifiers that currently have surviving rows.
//
// # Concurrency
//
// Allocation is read-then-increment with no cross-request locking. Two
// concurrent uploads can observe the same maximum and collide on the
// store's (batch_id, row_number) uniqueness constraint; the colliding
// writer degrades to per-row handling for the affected rows. This race
// is accepted for the target request rate.
package batch
