package lattice

import (
	"fmt"
	"strings"
)

// Entry is one alternative fact in a TMS: a base value together with the
// support under which it holds.
type Entry struct {
	V Value
	S Support
}

func (e Entry) String() string {
	return fmt.Sprintf("%s per %s", Format(e.V), e.S)
}

// TMS is an unordered antichain of alternative justified facts for one
// cell: "this value might hold, for this reason, or that value for that
// other reason". No entry ever subsumes another.
//
// Merging is functional: tmsMerge returns the receiver unchanged (same
// pointer) when the increment adds no information, which is how cells
// detect "nothing new". Query may improve the entry set in place, which is
// invisible to callers because it only ever adds a consequence already
// implied by the existing entries.
type TMS struct {
	entries []Entry
}

func (*TMS) latticeValue() {}

// NewTMS builds a TMS from entries, enforcing the antichain invariant by
// assimilating one at a time.
func NewTMS(entries ...Entry) *TMS {
	t := &TMS{}
	for _, e := range entries {
		t.entries, _ = assimilateOne(t.entries, e)
	}
	return t
}

// Entries returns the current alternatives. Callers must not mutate the
// returned slice.
func (t *TMS) Entries() []Entry { return t.entries }

func (t *TMS) String() string {
	if len(t.entries) == 0 {
		return "TMS[]"
	}
	parts := make([]string, len(t.entries))
	for i, e := range t.entries {
		parts[i] = e.String()
	}
	return "TMS[" + strings.Join(parts, "; ") + "]"
}

// Subsumes reports whether a makes b redundant: a's value implies b's
// value and a's support is a subset of b's. A subsumed fact costs at least
// as many assumptions to reach a conclusion that is no stronger.
func Subsumes(a, b Entry) bool {
	return implies(a.V, b.V) && a.S.Subset(b.S)
}

// assimilateOne adds e to an antichain of entries. No-op if an existing
// entry subsumes e; otherwise entries subsumed by e are dropped and e is
// added. The result is always an antichain.
func assimilateOne(entries []Entry, e Entry) ([]Entry, bool) {
	for _, old := range entries {
		if Subsumes(old, e) {
			return entries, false
		}
	}
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, e)
	for _, old := range entries {
		if !Subsumes(e, old) {
			out = append(out, old)
		}
	}
	return out, true
}

// entryOf turns a non-TMS value into a TMS entry, splitting a Datum into
// its base and support. Raw values carry the empty support.
func entryOf(v Value) Entry {
	return Entry{V: BaseOf(v), S: SupportOf(v)}
}

// Assimilate incorporates new facts without deducing consequences.
// Returns the receiver itself when nothing changed, a new TMS otherwise.
func (t *TMS) Assimilate(v Value) *TMS {
	var incoming []Entry
	switch val := v.(type) {
	case nil, Nothing:
		return t
	case *TMS:
		incoming = val.entries
	default:
		incoming = []Entry{entryOf(v)}
	}

	entries := t.entries
	changed := false
	for _, e := range incoming {
		var did bool
		entries, did = assimilateOne(entries, e)
		changed = changed || did
	}
	if !changed {
		return t
	}
	return &TMS{entries: entries}
}

// StrongestConsequence folds together every entry whose support is fully
// believed under the worldview, producing the most informative fact the
// current beliefs justify. Returns Nothing when no entry is believed, and
// Contradiction when believed entries conflict. The returned value is a
// Datum carrying the combined support.
func (t *TMS) StrongestConsequence(wv *Worldview) Value {
	var result Value = TheNothing
	for _, e := range t.entries {
		if wv != nil && !wv.BelievesAll(e.S) {
			continue
		}
		d := NewDatum(e.V, map[LayerName]LayerValue{LayerSupport: e.S})
		if IsNothing(result) {
			result = d
			continue
		}
		result = layeredMergeProc.Apply(result, d)
		if Contradictory(result) {
			return TheContradiction
		}
	}
	return result
}

// Query returns the strongest consequence under the live worldview, or
// Nothing if nothing is fully believed. As a side effect the consequence
// is assimilated back into the TMS, so a fact only derivable from combined
// premises becomes its own entry. That improvement is transparent to
// callers.
func (t *TMS) Query(wv *Worldview) Value {
	cons := t.StrongestConsequence(wv)
	if IsNothing(cons) || Contradictory(cons) {
		return cons
	}
	t.entries, _ = assimilateOne(t.entries, entryOf(cons))
	return cons
}

// mergeTMS implements Merge for a TMS content: assimilate the increment,
// recompute the strongest consequence under the live worldview, and
// assimilate that consequence back in (fixed point). A contradiction in
// the consequence surfaces to the caller.
func mergeTMS(wv *Worldview, t *TMS, increment Value) Value {
	candidate := t.Assimilate(increment)
	cons := candidate.StrongestConsequence(wv)
	if Contradictory(cons) {
		return TheContradiction
	}
	if IsNothing(cons) {
		return candidate
	}
	return candidate.Assimilate(cons)
}
