// Package network implements the propnet cell and propagator engine.
//
// A Network owns cells (named slots of partial information), propagators
// (computations bound to fixed cells), and the worldview of believed
// premises. Writing to a cell merges the new fact into the old one and
// synchronously alerts every dependent propagator; the resulting cascade
// runs to quiescence before the write returns.
//
// ARCHITECTURE:
//
// Single-threaded immediate-mode propagation:
// All mutation happens from one goroutine. A cell write drains a FIFO
// alert queue in the same call, which preserves the synchronous cascade
// semantics without unbounded call-stack recursion. Firing order within
// a cascade is unspecified; firing is idempotent at a fixed point, so a
// cyclic network converges when repeated firing stops producing new
// information.
//
// Failure containment:
// A contradiction unwinds only the single triggering AddContent call.
// Failures inside propagators are caught at the propagator boundary,
// logged, and do not stop the remaining cascade. Nothing is rolled back;
// information that already propagated stays put.
//
// Worldview toggles:
// BringIn and KickOut re-alert every propagator that has ever fired.
// Global, non-incremental, O(all propagators ever fired): a deliberate
// tradeoff for interactive-scale networks. Do not "optimize" this away
// without preserving re-derivation correctness.
//
// Tracing:
// Every event (cell updates, firings, contradictions, toggles) is
// stamped with a logical clock seq and the current turn token, and
// delivered to a pluggable Recorder. The sqlite journal in
// internal/trace is one such recorder.
package network
