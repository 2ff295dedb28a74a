// Package viz renders networks as Graphviz DOT documents.
//
// Cells are drawn as ellipses labeled with their queried content;
// propagators as boxes. Edges run from each input cell to the propagator
// and from the propagator to its output cell (the last wired cell).
// Output is deterministic: nodes and edges appear in sorted name order,
// so the same network always renders the same document.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/network"
)

// Options controls rendering.
type Options struct {
	// Name is the graph name. Defaults to "network".
	Name string

	// ShowContents labels cells with their current queried content.
	ShowContents bool
}

// DOT renders the network as a Graphviz DOT document.
func DOT(n *network.Network, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "network"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quoteID(name))
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\"];\n\n")

	cells := append([]*network.Cell(nil), n.Cells()...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Name() < cells[j].Name() })

	for _, c := range cells {
		label := c.Name()
		if opts.ShowContents {
			content := c.Query()
			if !lattice.IsNothing(content) {
				label = fmt.Sprintf("%s\\n%s", c.Name(), escapeLabel(lattice.Format(content)))
			}
		}
		fmt.Fprintf(&b, "  %s [shape=ellipse, label=\"%s\"];\n", cellID(c.Name()), label)
	}
	b.WriteString("\n")

	props := append([]*network.Propagator(nil), n.Propagators()...)
	sort.Slice(props, func(i, j int) bool { return props[i].Name() < props[j].Name() })

	for _, p := range props {
		fmt.Fprintf(&b, "  %s [shape=box, label=\"%s\"];\n", propID(p.Name()), escapeLabel(p.Name()))
	}
	b.WriteString("\n")

	for _, p := range props {
		names := p.CellNames()
		if len(names) == 0 {
			continue
		}
		// Last wired cell is the output.
		out := names[len(names)-1]
		for _, in := range names[:len(names)-1] {
			fmt.Fprintf(&b, "  %s -> %s;\n", cellID(in), propID(p.Name()))
		}
		fmt.Fprintf(&b, "  %s -> %s;\n", propID(p.Name()), cellID(out))
	}

	b.WriteString("}\n")
	return b.String()
}

func cellID(name string) string { return quoteID("cell_" + name) }
func propID(name string) string { return quoteID("prop_" + name) }

// quoteID quotes a DOT identifier. Quoting unconditionally sidesteps the
// keyword and character-class rules.
func quoteID(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
