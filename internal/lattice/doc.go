// Package lattice implements the partial-information value algebra for
// propnet.
//
// Values form a closed tagged union (Nothing, Number, Boolean, Interval,
// Datum, TMS, Contradiction) and information only ever grows: Merge is a
// lattice join with explicit contradiction detection. Nothing is the
// identity of Merge and Contradiction the failure sentinel; neither is
// ever stored in a cell (Nothing writes are no-ops, contradictions abort
// the write).
//
// Annotation layers separate bookkeeping from arithmetic. A Datum pairs a
// base value with named layers (currently only the support layer, the set
// of premises justifying the value). Layered procedures run a base
// operation once and combine each present layer independently, so the
// interval arithmetic never mentions justification and the justification
// rules never mention intervals.
//
// Truth maintenance is the TMS type: a per-cell antichain of alternative
// justified facts whose strongest consequence is computed under an
// explicit Worldview. The worldview is a value threaded through Merge and
// Query, never package-level state.
package lattice
