package network

import (
	"fmt"
	"log/slog"

	"github.com/roach88/propnet/internal/lattice"
)

// Cell is a named slot of partial information. Content starts at Nothing
// and only ever grows more informative: every write goes through Merge,
// and a write that would lose or contradict information fails with the
// prior content intact.
type Cell struct {
	name      string
	net       *Network
	content   lattice.Value
	neighbors []*Propagator
}

// NewCell creates an empty cell registered with the network.
func (n *Network) NewCell(name string) *Cell {
	c := &Cell{
		name:    name,
		net:     n,
		content: lattice.TheNothing,
	}
	n.cells = append(n.cells, c)
	n.record(Event{Type: EventCellCreated, Cell: name})
	return c
}

// Name returns the cell's name.
func (c *Cell) Name() string { return c.name }

// Content returns the cell's current content. May be Nothing. The
// returned value must be treated as immutable.
func (c *Cell) Content() lattice.Value {
	return c.content
}

// Query returns the currently believed reading of the cell's content:
// Nothing if the content's justification is not fully believed, the
// strongest consequence if the content is a TMS.
func (c *Cell) Query() lattice.Value {
	return lattice.Query(c.net.wv, c.content)
}

// AddContent merges new information into the cell.
//
//   - Nothing (including a layered Nothing) is a no-op.
//   - An irreconcilable increment returns a contradiction error naming
//     the cell and both values; the cell keeps its prior content, and
//     propagators that already fired earlier in the cascade are not
//     rolled back.
//   - An increment that adds no information is a silent no-op: no
//     notification, so cyclic networks settle at their fixed point.
//   - Otherwise the merged content is stored and every dependent
//     propagator is alerted. Alerting is synchronous: the cascade runs
//     to quiescence before AddContent returns.
func (c *Cell) AddContent(increment lattice.Value) error {
	if increment == nil || lattice.IsNothing(lattice.BaseOf(increment)) {
		return nil
	}

	old := c.content
	merged := lattice.Merge(c.net.wv, old, increment)
	if lattice.Contradictory(merged) {
		c.net.record(Event{
			Type: EventContradiction,
			Cell: c.name,
			Old:  lattice.Format(old),
			New:  lattice.Format(increment),
		})
		return NewContradictionError(c.name, old, increment)
	}

	if !lattice.IsNothing(old) && lattice.SameInfo(old, merged) {
		return nil
	}

	c.content = merged
	slog.Debug("cell updated",
		"cell", c.name,
		"old", lattice.Format(old),
		"new", lattice.Format(merged),
	)
	c.net.record(Event{
		Type: EventCellUpdated,
		Cell: c.name,
		Old:  lattice.Format(old),
		New:  lattice.Format(merged),
	})

	for _, p := range c.neighbors {
		c.net.queue.enqueue(p)
		if !c.net.alertedSet[p] {
			c.net.alertedSet[p] = true
			c.net.everAlerted = append(c.net.everAlerted, p)
		}
	}
	c.net.drain()
	return nil
}

// NewNeighbor registers a propagator as depending on this cell.
// Idempotent. Registering alerts the propagator immediately, so a
// propagator wired after the cell already has content still sees it.
func (c *Cell) NewNeighbor(p *Propagator) {
	for _, existing := range c.neighbors {
		if existing == p {
			return
		}
	}
	c.neighbors = append(c.neighbors, p)
	c.net.alert(p)
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell(%s: %s)", c.name, lattice.Format(c.content))
}
