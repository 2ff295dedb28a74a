package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/network"
)

func sumNetwork(t *testing.T) (*network.Network, *network.Cell, *network.Cell) {
	t.Helper()
	n := network.New()
	a := n.NewCell("a")
	b := n.NewCell("b")
	total := n.NewCell("total")
	require.NoError(t, network.Sum(a, b, total))
	return n, a, b
}

func TestDOT_Structure(t *testing.T) {
	n, _, _ := sumNetwork(t)
	doc := DOT(n, Options{Name: "sums"})

	assert.Contains(t, doc, `digraph "sums" {`)
	assert.Contains(t, doc, "rankdir=LR;")
	assert.Contains(t, doc, `"cell_a" [shape=ellipse, label="a"];`)
	assert.Contains(t, doc, `"cell_b" [shape=ellipse, label="b"];`)
	assert.Contains(t, doc, `"cell_total" [shape=ellipse, label="total"];`)
	assert.Contains(t, doc, "shape=box")
	assert.Contains(t, doc, "}\n")
}

func TestDOT_DefaultName(t *testing.T) {
	n, _, _ := sumNetwork(t)
	doc := DOT(n, Options{})
	assert.Contains(t, doc, `digraph "network" {`)
}

func TestDOT_Deterministic(t *testing.T) {
	n, _, _ := sumNetwork(t)
	assert.Equal(t, DOT(n, Options{Name: "sums"}), DOT(n, Options{Name: "sums"}))
}

func TestDOT_ShowContents(t *testing.T) {
	n, a, b := sumNetwork(t)
	require.NoError(t, a.AddContent(lattice.Number(3)))
	require.NoError(t, b.AddContent(lattice.Number(12)))

	doc := DOT(n, Options{Name: "sums", ShowContents: true})
	assert.Contains(t, doc, `label="a\n3"`)
	assert.Contains(t, doc, `label="total\n15"`)

	// Without the flag, labels carry only names.
	bare := DOT(n, Options{Name: "sums"})
	assert.NotContains(t, bare, `\n3`)
}

func TestDOT_EdgesRunThroughPropagator(t *testing.T) {
	n, _, _ := sumNetwork(t)
	doc := DOT(n, Options{Name: "sums"})

	// Inputs feed each directional propagator, which feeds its output.
	assert.Contains(t, doc, `"cell_a" -> `)
	assert.Contains(t, doc, ` -> "cell_total";`)
}
