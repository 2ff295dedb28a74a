package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupport_DeduplicatesAndOrders(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	s := NewSupport(p2, p1, p2, nil, p1)
	require.Equal(t, 2, s.Len())
	// Sorted by creation id regardless of argument order.
	assert.Equal(t, []*Premise{p1, p2}, s.Premises())
	assert.Equal(t, "{p1, p2}", s.String())
}

func TestSupport_SetOperations(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")
	p3 := wv.NewPremise("p3")

	s12 := NewSupport(p1, p2)
	s1 := NewSupport(p1)
	s3 := NewSupport(p3)

	assert.True(t, s1.Subset(s12))
	assert.False(t, s12.Subset(s1))
	assert.True(t, s1.MoreInformative(s12))
	assert.False(t, s12.MoreInformative(s12))
	assert.True(t, s12.Union(s3).SameAs(NewSupport(p1, p2, p3)))
	assert.True(t, Support{}.Subset(s1), "empty support is a subset of everything")
}

func TestAdd_ZeroOperandContributesNoPremises(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Add.Apply(
		SupportedValue(Number(0), p1),
		SupportedValue(Number(7), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(7)))
	// Adding zero cannot have influenced the sum.
	assert.True(t, d.Support().SameAs(NewSupport(p2)))
}

func TestAdd_AllZeroOperandsKeepOneJustification(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Add.Apply(
		SupportedValue(Number(0), p1),
		SupportedValue(Number(0), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(0)))
	assert.True(t, d.Support().SameAs(NewSupport(p1)))
}

func TestMultiply_ZeroOperandGetsSoleCredit(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Multiply.Apply(
		SupportedValue(Number(0), p1),
		SupportedValue(Number(9), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(0)))
	// Zero times anything is zero; the other factor is irrelevant.
	assert.True(t, d.Support().SameAs(NewSupport(p1)))
}

func TestMultiply_NonzeroOperandsUnion(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Multiply.Apply(
		SupportedValue(Number(3), p1),
		SupportedValue(Number(4), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(12)))
	assert.True(t, d.Support().SameAs(NewSupport(p1, p2)))
}

func TestDivide_ZeroDividendExcludesDivisorSupport(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Divide.Apply(
		SupportedValue(Number(0), p1),
		SupportedValue(Number(4), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(0)))
	assert.True(t, d.Support().SameAs(NewSupport(p1)))
}

func TestDivide_IncludesDivisorSupport(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	result := Divide.Apply(
		SupportedValue(Number(8), p1),
		SupportedValue(Number(4), p2),
	)
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.True(t, Equal(d.Base(), Number(2)))
	// A disbelieved divisor could be zero; its premises stay attached.
	assert.True(t, d.Support().SameAs(NewSupport(p1, p2)))
}

func TestDivide_ByZeroYieldsNothing(t *testing.T) {
	result := Divide.Apply(Number(8), Number(0))
	assert.True(t, IsNothing(BaseOf(result)))
}

func TestArith_NothingShortCircuits(t *testing.T) {
	result := Add.Apply(TheNothing, Number(7))
	assert.True(t, IsNothing(BaseOf(result)))
}

func TestArith_MixedNumberInterval(t *testing.T) {
	result := Add.Apply(Number(1), NewInterval(2, 4))
	base := BaseOf(result)
	require.IsType(t, Interval{}, base)
	assert.True(t, base.(Interval).Equal(NewInterval(3, 5)))
}

func TestSupportOf_RawValuesAreUnsupported(t *testing.T) {
	assert.True(t, SupportOf(Number(5)).Empty())
	assert.True(t, SupportOf(TheNothing).Empty())
}
