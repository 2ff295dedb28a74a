package lattice

import "math"

// mergeTolerance bounds how close interval endpoints must be before the
// intersection is considered identical to an operand. Keeps floating-point
// noise from manufacturing "new information" and re-firing propagators.
const mergeTolerance = 1e-9

// layeredMergeProc runs base merging once and combines the support layer
// with the confirm/override/combine handler. Built lazily below.
var layeredMergeProc = newLayeredMerge()

func newLayeredMerge() *LayeredProc {
	p := NewLayeredProc("merge", 2, func(args ...Value) Value {
		return mergeBase(args[0], args[1])
	})
	p.SetHandler(LayerSupport, supportMerge)
	return p
}

// Merge combines two pieces of partial information. The contract:
//
//   - If the increment adds no new information, the result carries exactly
//     the content's information (for raw operands, the content itself by
//     identity; for TMS contents, the same *TMS pointer).
//   - If the facts cannot be reconciled, Contradiction is returned and
//     nothing is stored anywhere.
//   - Otherwise the result is the combined, more informative fact.
//
// The worldview is consulted only for TMS operands (strongest consequence
// is computed under the live beliefs). It is threaded explicitly; there is
// no ambient global worldview.
func Merge(wv *Worldview, content, increment Value) Value {
	// Nothing absorbs into the other operand.
	if content == nil || IsNothing(content) {
		return increment
	}
	if increment == nil || IsNothing(increment) {
		return content
	}

	// A TMS assimilates anything; anything merging with a TMS is lifted
	// into one first.
	if t, ok := content.(*TMS); ok {
		return mergeTMS(wv, t, increment)
	}
	if t, ok := increment.(*TMS); ok {
		return mergeTMS(wv, NewTMS(entryOf(content)), t)
	}

	// Layered data merge through the layered procedure so the support
	// layer combines per the confirm/override/combine rules.
	_, cd := content.(*Datum)
	_, id := increment.(*Datum)
	if cd || id {
		merged := layeredMergeProc.Apply(content, increment)
		if Contradictory(merged) {
			return TheContradiction
		}
		return merged
	}

	return mergeBase(content, increment)
}

// mergeBase merges raw (unlayered) values. Exhaustive over the closed
// union; unhandled type pairs are incomparable and contradict.
func mergeBase(content, increment Value) Value {
	if content == nil || IsNothing(content) {
		return increment
	}
	if increment == nil || IsNothing(increment) {
		return content
	}
	if Contradictory(content) || Contradictory(increment) {
		return TheContradiction
	}

	switch c := content.(type) {
	case Number:
		switch i := increment.(type) {
		case Number:
			if c == i {
				return content
			}
			return TheContradiction
		case Interval:
			if i.Contains(float64(c)) {
				return content
			}
			return TheContradiction
		}

	case Interval:
		switch i := increment.(type) {
		case Number:
			// A number inside the interval is strictly more specific.
			if c.Contains(float64(i)) {
				return increment
			}
			return TheContradiction
		case Interval:
			return mergeIntervals(c, i)
		}

	case Boolean:
		if i, ok := increment.(Boolean); ok {
			if c == i {
				return content
			}
			return TheContradiction
		}
	}

	// Incomparable types, or a pair not covered above. Equal values
	// confirm; anything else is a contradiction.
	if Equal(content, increment) {
		return content
	}
	return TheContradiction
}

// mergeIntervals intersects. When the intersection is (within tolerance)
// one of the operands, that operand is returned by identity: this is what
// lets cells recognize "no new information" and stop re-alerting.
func mergeIntervals(content, increment Interval) Value {
	isect := content.Intersect(increment)
	if isect.Empty() {
		return TheContradiction
	}
	if intervalApprox(isect, content) {
		return content
	}
	if intervalApprox(isect, increment) {
		return increment
	}
	return isect
}

func intervalApprox(a, b Interval) bool {
	return math.Abs(a.Lo-b.Lo) < mergeTolerance && math.Abs(a.Hi-b.Hi) < mergeTolerance
}

// SameInfo reports whether old and new carry identical information, which
// is the cell's "no notification needed" test. For layered data the base
// must be equal and the support sets identical (a support that became more
// informative IS new information and must propagate). TMS values compare
// by pointer: merge returns the same pointer when nothing changed.
func SameInfo(old, new Value) bool {
	if ot, ok := old.(*TMS); ok {
		nt, ok := new.(*TMS)
		return ok && ot == nt
	}
	if _, ok := new.(*TMS); ok {
		return false
	}
	if !Equal(old, new) {
		return false
	}
	return SupportOf(old).SameAs(SupportOf(new))
}

// Query returns the currently believed reading of a value: the strongest
// consequence of a TMS, a supported value only if all its premises are
// believed, and raw values unchanged. May improve a TMS in place.
func Query(wv *Worldview, v Value) Value {
	switch val := v.(type) {
	case nil:
		return TheNothing
	case *TMS:
		return val.Query(wv)
	case *Datum:
		if wv == nil || wv.BelievesAll(val.Support()) {
			return val
		}
		return TheNothing
	default:
		return v
	}
}
