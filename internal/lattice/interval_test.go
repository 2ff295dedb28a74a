package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval_InvertedBoundsAreEmpty(t *testing.T) {
	assert.True(t, NewInterval(5, 3).Empty())
	assert.False(t, NewInterval(3, 5).Empty())
	assert.False(t, Span(4).Empty())
}

func TestInterval_EmptyEqualsEmpty(t *testing.T) {
	assert.True(t, EmptyInterval().Equal(NewInterval(5, 3)))
	assert.False(t, EmptyInterval().Equal(NewInterval(3, 5)))
}

func TestInterval_Contains(t *testing.T) {
	i := NewInterval(3, 5)
	assert.True(t, i.Contains(3))
	assert.True(t, i.Contains(5))
	assert.False(t, i.Contains(2.9))
	assert.False(t, EmptyInterval().Contains(0))
}

func TestInterval_IntersectAndHull(t *testing.T) {
	a := NewInterval(3, 9)
	b := NewInterval(7, 12)

	assert.True(t, a.Intersect(b).Equal(NewInterval(7, 9)))
	assert.True(t, a.Hull(b).Equal(NewInterval(3, 12)))
	assert.True(t, a.Intersect(NewInterval(10, 20)).Empty())
	assert.True(t, a.Intersect(EmptyInterval()).Empty())
	assert.True(t, a.Hull(EmptyInterval()).Equal(a))
}

func TestInterval_Arithmetic(t *testing.T) {
	a := NewInterval(1, 2)
	b := NewInterval(3, 5)

	assert.True(t, a.Add(b).Equal(NewInterval(4, 7)))
	assert.True(t, b.Sub(a).Equal(NewInterval(1, 4)))
	assert.True(t, a.Mul(b).Equal(NewInterval(3, 10)))

	neg := NewInterval(-2, 3)
	assert.True(t, neg.Mul(b).Equal(NewInterval(-10, 15)))
}

func TestInterval_Div(t *testing.T) {
	a := NewInterval(6, 12)

	q := a.Div(NewInterval(2, 3))
	require.IsType(t, Interval{}, q)
	assert.True(t, q.(Interval).Equal(NewInterval(2, 6)))
}

func TestInterval_DivSpanningZeroIsUndetermined(t *testing.T) {
	a := NewInterval(6, 12)

	// No sound single-interval quotient exists; the answer is simply not
	// determined yet.
	assert.Equal(t, TheNothing, a.Div(NewInterval(-1, 1)))
}

func TestInterval_DivByZeroZeroIsEmpty(t *testing.T) {
	a := NewInterval(6, 12)

	q := a.Div(NewInterval(0, 0))
	require.IsType(t, Interval{}, q)
	assert.True(t, q.(Interval).Empty())
	assert.True(t, Contradictory(q))
}

func TestInterval_EmptyPropagatesThroughArithmetic(t *testing.T) {
	e := EmptyInterval()
	a := NewInterval(1, 2)

	assert.True(t, e.Add(a).Empty())
	assert.True(t, a.Sub(e).Empty())
	assert.True(t, e.Mul(a).Empty())
}

func TestToInterval(t *testing.T) {
	i, ok := ToInterval(Number(5))
	require.True(t, ok)
	assert.True(t, i.Equal(Span(5)))

	i, ok = ToInterval(NewInterval(1, 2))
	require.True(t, ok)
	assert.True(t, i.Equal(NewInterval(1, 2)))

	_, ok = ToInterval(Boolean(true))
	assert.False(t, ok)
}
