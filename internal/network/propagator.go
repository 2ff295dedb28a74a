package network

import (
	"fmt"
	"strings"
)

// Propagator is a computation bound to a fixed list of cells, re-run
// whenever any of them changes. It is not incremental: each firing
// re-reads all bound cells. Firing is expected to be idempotent at a
// fixed point, which is what lets cyclic networks converge.
type Propagator struct {
	name  string
	net   *Network
	cells []*Cell
	run   func() error
}

// NewPropagator wires a computation to its cells and fires it once so a
// network built over cells that already have content settles immediately.
// All cells must belong to this network.
func (n *Network) NewPropagator(name string, cells []*Cell, run func() error) (*Propagator, error) {
	for _, c := range cells {
		if c.net != n {
			return nil, NewWiringError(fmt.Sprintf("cell %q belongs to a different network", c.name))
		}
	}

	p := &Propagator{name: name, net: n, cells: cells, run: run}
	n.propagators = append(n.propagators, p)

	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = c.name
	}
	n.record(Event{Type: EventPropagatorCreated, Propagator: name, Wiring: names})

	for _, c := range cells {
		c.NewNeighbor(p)
	}
	// Intentionally redundant when a cell registration already fired it:
	// alerting is idempotent at a fixed point.
	n.alert(p)
	return p, nil
}

// Name returns the propagator's name.
func (p *Propagator) Name() string { return p.name }

// CellNames returns the names of the bound cells in wiring order.
func (p *Propagator) CellNames() []string {
	names := make([]string, len(p.cells))
	for i, c := range p.cells {
		names[i] = c.name
	}
	return names
}

// fire runs the computation once. Called only from the network's drain
// loop; errors are handled at that boundary.
func (p *Propagator) fire() error {
	return p.run()
}

func (p *Propagator) String() string {
	return fmt.Sprintf("Propagator(%s: [%s])", p.name, strings.Join(p.CellNames(), ", "))
}
