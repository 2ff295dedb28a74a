package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatum_FlattensNestedData(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")
	p2 := wv.NewPremise("p2")

	inner := SupportedValue(Number(5), p1)
	outer := NewDatum(inner, map[LayerName]LayerValue{
		LayerSupport: NewSupport(p2),
	})

	// A Datum's base is never a Datum; duplicate layers combine.
	assert.Equal(t, Number(5), outer.Base())
	assert.True(t, outer.Support().SameAs(NewSupport(p1, p2)))
}

func TestDatum_EqualityIgnoresLayers(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")

	assert.True(t, Equal(SupportedValue(Number(5), p1), Number(5)))
	assert.True(t, Equal(Number(5), SupportedValue(Number(5), p1)))
	assert.False(t, Equal(SupportedValue(Number(5), p1), Number(6)))
}

func TestLayeredProc_ResultIsAlwaysDatum(t *testing.T) {
	result := Add.Apply(Number(1), Number(2))
	d, ok := result.(*Datum)
	require.True(t, ok)
	assert.Equal(t, Number(3), d.Base())
	assert.True(t, d.Support().Empty())
}

func TestLayeredProc_ArityMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		Add.Apply(Number(1))
	})
}

func TestBaseOf(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")

	assert.Equal(t, Number(5), BaseOf(SupportedValue(Number(5), p1)))
	assert.Equal(t, Number(5), BaseOf(Number(5)))
}

func TestDatum_String(t *testing.T) {
	wv := NewWorldview()
	p1 := wv.NewPremise("p1")

	s := SupportedValue(Number(5), p1).String()
	assert.Contains(t, s, "5")
	assert.Contains(t, s, "p1")
}
