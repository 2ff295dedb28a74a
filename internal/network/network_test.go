package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/propnet/internal/lattice"
)

func sumNetwork(t *testing.T, opts ...Option) (*Network, *Cell, *Cell, *Cell) {
	t.Helper()
	n := New(opts...)
	a := n.NewCell("a")
	b := n.NewCell("b")
	total := n.NewCell("total")
	require.NoError(t, Sum(a, b, total))
	return n, a, b, total
}

func TestSum_Forward(t *testing.T) {
	_, a, b, total := sumNetwork(t)

	require.NoError(t, a.AddContent(lattice.Number(3)))
	require.NoError(t, b.AddContent(lattice.Number(12)))

	assert.True(t, lattice.Equal(total.Query(), lattice.Number(15)))
}

func TestSum_Backward(t *testing.T) {
	_, a, b, total := sumNetwork(t)

	require.NoError(t, total.AddContent(lattice.Number(20)))
	require.NoError(t, a.AddContent(lattice.Number(8)))

	assert.True(t, lattice.Equal(b.Query(), lattice.Number(12)))
}

func TestSum_ContradictionPreservesContents(t *testing.T) {
	_, a, b, total := sumNetwork(t)

	require.NoError(t, a.AddContent(lattice.Number(3)))
	require.NoError(t, b.AddContent(lattice.Number(12)))

	err := total.AddContent(lattice.Number(20))
	require.Error(t, err)
	assert.True(t, IsContradiction(err))

	// Nothing was lost or rolled back.
	assert.True(t, lattice.Equal(a.Query(), lattice.Number(3)))
	assert.True(t, lattice.Equal(b.Query(), lattice.Number(12)))
	assert.True(t, lattice.Equal(total.Query(), lattice.Number(15)))
}

func TestSum_IntervalRefinement(t *testing.T) {
	_, a, b, total := sumNetwork(t)

	require.NoError(t, a.AddContent(lattice.NewInterval(1, 5)))
	require.NoError(t, b.AddContent(lattice.NewInterval(2, 4)))

	got := lattice.BaseOf(total.Query())
	require.IsType(t, lattice.Interval{}, got)
	assert.True(t, got.(lattice.Interval).Equal(lattice.NewInterval(3, 9)))

	// A tighter total refines the inputs through the inverse wiring.
	require.NoError(t, total.AddContent(lattice.Number(9)))
	gotA := lattice.BaseOf(a.Query())
	require.IsType(t, lattice.Interval{}, gotA)
	assert.True(t, gotA.(lattice.Interval).Equal(lattice.NewInterval(5, 5)))
}

func TestSupportedValues_FlowThroughArithmetic(t *testing.T) {
	n, a, b, total := sumNetwork(t)
	p1 := n.NewPremise("p1")
	p2 := n.NewPremise("p2")

	require.NoError(t, a.AddContent(lattice.SupportedValue(lattice.Number(3), p1)))
	require.NoError(t, b.AddContent(lattice.SupportedValue(lattice.Number(12), p2)))

	got := total.Query()
	d, ok := got.(*lattice.Datum)
	require.True(t, ok)
	assert.True(t, lattice.Equal(d.Base(), lattice.Number(15)))
	assert.True(t, d.Support().SameAs(lattice.NewSupport(p1, p2)))
}

func TestKickOut_RetractsConsequences(t *testing.T) {
	n, a, b, total := sumNetwork(t)
	p1 := n.NewPremise("p1")
	p2 := n.NewPremise("p2")

	require.NoError(t, a.AddContent(lattice.SupportedValue(lattice.Number(3), p1)))
	require.NoError(t, b.AddContent(lattice.SupportedValue(lattice.Number(12), p2)))
	require.True(t, lattice.Equal(total.Query(), lattice.Number(15)))

	n.KickOut(p2)
	assert.True(t, lattice.IsNothing(lattice.BaseOf(total.Query())),
		"consequence of a disbelieved premise must not be believed")

	// Believing again restores the consequence without recomputation
	// losing anything.
	n.BringIn(p2)
	assert.True(t, lattice.Equal(total.Query(), lattice.Number(15)))
}

func TestKickOutName_UnknownPremise(t *testing.T) {
	n := New()
	err := n.KickOutName("no-such-premise")
	require.Error(t, err)

	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeUnknownPremise, re.Code)
}

func TestFahrenheitCelsius_BothDirections(t *testing.T) {
	n := New()
	f := n.NewCell("f")
	c := n.NewCell("c")
	require.NoError(t, FahrenheitCelsius(f, c))

	require.NoError(t, f.AddContent(lattice.Number(212)))
	assert.True(t, lattice.Equal(c.Query(), lattice.Number(100)))

	n2 := New()
	f2 := n2.NewCell("f")
	c2 := n2.NewCell("c")
	require.NoError(t, FahrenheitCelsius(f2, c2))

	require.NoError(t, c2.AddContent(lattice.Number(-40)))
	assert.True(t, lattice.Equal(f2.Query(), lattice.Number(-40)))
}

func TestConstant_SuppliesValueImmediately(t *testing.T) {
	n := New()
	c := n.NewCell("c")

	_, err := Constant(lattice.Number(42))(c)
	require.NoError(t, err)
	assert.True(t, lattice.Equal(c.Query(), lattice.Number(42)))
}

func TestSwitch_GatesOnControl(t *testing.T) {
	n := New()
	control := n.NewCell("control")
	in := n.NewCell("in")
	out := n.NewCell("out")
	_, err := Switch()(control, in, out)
	require.NoError(t, err)

	require.NoError(t, in.AddContent(lattice.Number(7)))
	assert.True(t, lattice.IsNothing(lattice.BaseOf(out.Query())),
		"unknown control passes nothing")

	require.NoError(t, control.AddContent(lattice.Boolean(true)))
	assert.True(t, lattice.Equal(out.Query(), lattice.Number(7)))
}

func TestSwitch_FalseControlPassesNothing(t *testing.T) {
	n := New()
	control := n.NewCell("control")
	in := n.NewCell("in")
	out := n.NewCell("out")
	_, err := Switch()(control, in, out)
	require.NoError(t, err)

	require.NoError(t, control.AddContent(lattice.Boolean(false)))
	require.NoError(t, in.AddContent(lattice.Number(7)))

	assert.True(t, lattice.IsNothing(lattice.BaseOf(out.Query())))
}

func TestPropagator_WiredAfterContentSeesIt(t *testing.T) {
	n := New()
	a := n.NewCell("a")
	b := n.NewCell("b")
	out := n.NewCell("out")

	require.NoError(t, a.AddContent(lattice.Number(2)))
	require.NoError(t, b.AddContent(lattice.Number(5)))

	// Wiring after the fact fires immediately.
	_, err := Adder()(a, b, out)
	require.NoError(t, err)
	assert.True(t, lattice.Equal(out.Query(), lattice.Number(7)))
}

func TestNewPropagator_RejectsForeignCells(t *testing.T) {
	n1 := New()
	n2 := New()
	a := n1.NewCell("a")
	b := n2.NewCell("b")

	_, err := n1.NewPropagator("bad", []*Cell{a, b}, func() error { return nil })
	require.Error(t, err)

	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeBadWiring, re.Code)
}

func TestAddContent_NothingIsNoOp(t *testing.T) {
	n := New()
	rec := NewMemoryRecorder()
	n.recorder = rec
	c := n.NewCell("c")

	require.NoError(t, c.AddContent(lattice.TheNothing))
	require.NoError(t, c.AddContent(nil))
	assert.Empty(t, rec.OfType(EventCellUpdated))
}

func TestAddContent_RedundantWriteDoesNotReAlert(t *testing.T) {
	rec := NewMemoryRecorder()
	_, a, b, total := sumNetwork(t, WithRecorder(rec))

	require.NoError(t, a.AddContent(lattice.Number(3)))
	require.NoError(t, b.AddContent(lattice.Number(12)))

	fired := len(rec.OfType(EventPropagatorFired))

	// Telling the network what it already knows changes nothing.
	require.NoError(t, total.AddContent(lattice.Number(15)))
	assert.Equal(t, fired, len(rec.OfType(EventPropagatorFired)))
}

func TestCell_TMSContentTracksWorldview(t *testing.T) {
	n := New()
	c := n.NewCell("c")
	p1 := n.NewPremise("p1")
	p2 := n.NewPremise("p2")

	tms := lattice.NewTMS(
		lattice.Entry{V: lattice.NewInterval(3, 9), S: lattice.NewSupport(p1)},
		lattice.Entry{V: lattice.NewInterval(7, 12), S: lattice.NewSupport(p2)},
	)
	require.NoError(t, c.AddContent(tms))

	got := c.Query()
	d, ok := got.(*lattice.Datum)
	require.True(t, ok)
	assert.True(t, lattice.Equal(d.Base(), lattice.NewInterval(7, 9)))

	n.KickOut(p2)
	got = c.Query()
	d, ok = got.(*lattice.Datum)
	require.True(t, ok)
	assert.True(t, lattice.Equal(d.Base(), lattice.NewInterval(3, 9)))
}

func TestNetwork_EventSequencing(t *testing.T) {
	rec := NewMemoryRecorder()
	n := New(WithRecorder(rec), WithTokenGenerator(NewFixedGenerator("turn-1")))

	c := n.NewCell("c")
	require.NoError(t, c.AddContent(lattice.Number(1)))

	events := rec.Events()
	require.NotEmpty(t, events)

	var last int64
	for _, ev := range events {
		assert.Greater(t, ev.Seq, last, "seq must be strictly increasing")
		last = ev.Seq
		assert.Equal(t, "turn-1", ev.Turn)
	}

	assert.Equal(t, EventCellCreated, events[0].Type)
	assert.Equal(t, "c", events[0].Cell)
}
