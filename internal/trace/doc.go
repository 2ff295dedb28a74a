// Package trace provides a SQLite-backed journal of network activity.
//
// The journal is an append-only diagnostic log, not a persistence layer:
// cell contents are never reconstructed from it. It records:
//   - Cell and propagator creation (with wiring)
//   - Cell updates (old and new content, formatted)
//   - Propagator firings
//   - Contradictions (the rejected increment alongside the kept content)
//   - Premise toggles
//
// Ordering uses the network's logical seq counter, never timestamps, so
// two runs of the same deterministic network produce identical journals.
// Each session restarts the counter at 1; a journal shared across
// sessions reads back ordered by (seq, turn). Event ids are
// content-addressed (SHA-256 over a canonical NFC-normalized JSON
// encoding), and inserts use ON CONFLICT DO NOTHING, so re-recording a
// run is idempotent.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package trace
