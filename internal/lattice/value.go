package lattice

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface over the closed set of partial-information
// types. Only Nothing, Number, Boolean, Interval, *Datum, *TMS and
// Contradiction implement it. Merge and the generic operations dispatch
// with exhaustive type switches; adding a new partial-information type
// means adding a case to each switch, not registering into a table.
type Value interface {
	latticeValue() // Sealed - only these types implement it
}

// Nothing is the identity element of Merge: it carries no information at
// all. It is distinct from Go's nil so that "cell is empty" is an explicit,
// printable state rather than a missing pointer.
type Nothing struct{}

func (Nothing) latticeValue() {}

// TheNothing is the canonical Nothing value. All code should use this
// instead of constructing Nothing{} so identity comparisons stay cheap.
var TheNothing = Nothing{}

// IsNothing reports whether v carries no information.
func IsNothing(v Value) bool {
	_, ok := v.(Nothing)
	return ok
}

// Contradiction signals that two facts cannot be reconciled. It is never
// stored in a cell; Merge returns it and callers must check before writing.
type Contradiction struct{}

func (Contradiction) latticeValue() {}

// TheContradiction is the canonical Contradiction value.
var TheContradiction = Contradiction{}

// Contradictory reports whether v represents irreconcilable information.
// An empty interval counts: it is the interval-shaped spelling of "no real
// number satisfies both bounds".
func Contradictory(v Value) bool {
	switch val := v.(type) {
	case Contradiction:
		return true
	case Interval:
		return val.Empty()
	case *Datum:
		return Contradictory(val.base)
	default:
		return false
	}
}

// Number is a known real value. Cells holding a Number are fully determined
// up to the merge tolerance.
type Number float64

func (Number) latticeValue() {}

// Boolean is a known truth value. Used by the switch propagator's control
// cell.
type Boolean bool

func (Boolean) latticeValue() {}

// Format renders a value for logs, the REPL and trace output.
// Datum values render as their base with the layer names appended,
// TMS values as the list of alternatives.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case Nothing:
		return "Nothing"
	case Contradiction:
		return "Contradiction"
	case Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(bool(val))
	case Interval:
		return val.String()
	case *Datum:
		return val.String()
	case *TMS:
		return val.String()
	default:
		return fmt.Sprintf("<unknown %T>", v)
	}
}

// Equal compares two values for informational equality. Datum values
// compare by base value only (annotation layers are deliberately ignored,
// justification does not change what the fact says). TMS values compare
// by pointer identity: two stores of alternatives are the same only if they
// are the same store.
func Equal(a, b Value) bool {
	if ad, ok := a.(*Datum); ok {
		a = ad.Base()
	}
	if bd, ok := b.(*Datum); ok {
		b = bd.Base()
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case Nothing:
		return IsNothing(b)
	case Contradiction:
		_, ok := b.(Contradiction)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Interval:
		bv, ok := b.(Interval)
		return ok && av.Equal(bv)
	case *TMS:
		bv, ok := b.(*TMS)
		return ok && av == bv
	default:
		return false
	}
}
