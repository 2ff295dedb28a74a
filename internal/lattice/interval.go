package lattice

import (
	"fmt"
	"math"
)

// Interval is a closed range [Lo, Hi] of reals. An empty interval (no real
// in range) is represented with NaN endpoints so emptiness survives
// arithmetic without a separate sentinel type.
type Interval struct {
	Lo, Hi float64
}

func (Interval) latticeValue() {}

// NewInterval builds the closed interval [lo, hi]. If lo > hi the interval
// is empty.
func NewInterval(lo, hi float64) Interval {
	if lo > hi {
		return EmptyInterval()
	}
	return Interval{Lo: lo, Hi: hi}
}

// EmptyInterval returns the interval containing no points.
func EmptyInterval() Interval {
	return Interval{Lo: math.NaN(), Hi: math.NaN()}
}

// Span builds the degenerate interval [x, x].
func Span(x float64) Interval {
	return Interval{Lo: x, Hi: x}
}

// Empty reports whether the interval contains no points.
func (i Interval) Empty() bool {
	return math.IsNaN(i.Lo) || math.IsNaN(i.Hi)
}

// Contains reports whether x lies within the closed interval.
func (i Interval) Contains(x float64) bool {
	return !i.Empty() && i.Lo <= x && x <= i.Hi
}

// Equal reports endpoint equality. All empty intervals are equal to each
// other regardless of how their NaN endpoints arose.
func (i Interval) Equal(o Interval) bool {
	if i.Empty() && o.Empty() {
		return true
	}
	return i.Lo == o.Lo && i.Hi == o.Hi
}

func (i Interval) String() string {
	if i.Empty() {
		return "Interval(empty)"
	}
	return fmt.Sprintf("Interval[%g, %g]", i.Lo, i.Hi)
}

// Intersect returns the largest interval contained in both operands.
// Intersection with an empty interval is empty.
func (i Interval) Intersect(o Interval) Interval {
	if i.Empty() || o.Empty() {
		return EmptyInterval()
	}
	return NewInterval(math.Max(i.Lo, o.Lo), math.Min(i.Hi, o.Hi))
}

// Hull returns the smallest interval containing both operands.
func (i Interval) Hull(o Interval) Interval {
	if i.Empty() {
		return o
	}
	if o.Empty() {
		return i
	}
	return Interval{Lo: math.Min(i.Lo, o.Lo), Hi: math.Max(i.Hi, o.Hi)}
}

// Add is endpoint-wise addition: [a,b] + [c,d] = [a+c, b+d].
func (i Interval) Add(o Interval) Interval {
	if i.Empty() || o.Empty() {
		return EmptyInterval()
	}
	return Interval{Lo: i.Lo + o.Lo, Hi: i.Hi + o.Hi}
}

// Sub is endpoint-wise subtraction: [a,b] - [c,d] = [a-d, b-c].
func (i Interval) Sub(o Interval) Interval {
	if i.Empty() || o.Empty() {
		return EmptyInterval()
	}
	return Interval{Lo: i.Lo - o.Hi, Hi: i.Hi - o.Lo}
}

// Mul multiplies by taking the extrema of the four endpoint products.
func (i Interval) Mul(o Interval) Interval {
	if i.Empty() || o.Empty() {
		return EmptyInterval()
	}
	p1 := i.Lo * o.Lo
	p2 := i.Lo * o.Hi
	p3 := i.Hi * o.Lo
	p4 := i.Hi * o.Hi
	return Interval{
		Lo: math.Min(math.Min(p1, p2), math.Min(p3, p4)),
		Hi: math.Max(math.Max(p1, p2), math.Max(p3, p4)),
	}
}

// Div divides via multiplication by the reciprocal of the divisor.
//
// A divisor spanning zero has no sound single-interval quotient, so Div
// returns Nothing: the answer cannot be determined yet, and dependent
// propagators simply produce no output. The degenerate divisor [0,0] is a
// genuine contradiction and yields the empty interval. This resolves an
// inconsistency in earlier treatments that returned an unbounded interval.
func (i Interval) Div(o Interval) Value {
	if i.Empty() || o.Empty() {
		return EmptyInterval()
	}
	if o.Lo <= 0 && 0 <= o.Hi {
		if o.Lo == 0 && o.Hi == 0 {
			return EmptyInterval()
		}
		return TheNothing
	}
	return i.Mul(Interval{Lo: 1.0 / o.Hi, Hi: 1.0 / o.Lo})
}

// ToInterval promotes a Number to a degenerate interval and passes
// intervals through. Other value types do not promote.
func ToInterval(v Value) (Interval, bool) {
	switch val := v.(type) {
	case Interval:
		return val, true
	case Number:
		return Span(float64(val)), true
	default:
		return Interval{}, false
	}
}
