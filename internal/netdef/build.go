package netdef

import (
	"fmt"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/network"
)

// Built is a live network constructed from a NetSpec, with name maps
// back to the declared cells and premises.
type Built struct {
	Net      *network.Network
	Cells    map[string]*network.Cell
	Premises map[string]*lattice.Premise
}

// Build validates a NetSpec and constructs the live network it
// describes: cells first, then premises, then propagators, then initial
// contents in declaration order. A contradiction raised by an initial
// content addition is returned as-is; earlier additions stay in place.
func Build(spec *NetSpec, opts ...network.Option) (*Built, error) {
	if errs := Validate(spec); len(errs) > 0 {
		return nil, errs[0]
	}

	b := &Built{
		Net:      network.New(opts...),
		Cells:    make(map[string]*network.Cell, len(spec.Cells)),
		Premises: make(map[string]*lattice.Premise, len(spec.Premises)),
	}

	for _, cs := range spec.Cells {
		b.Cells[cs.Name] = b.Net.NewCell(cs.Name)
	}
	for _, name := range spec.Premises {
		b.Premises[name] = b.Net.NewPremise(name)
	}

	for i, ps := range spec.Propagators {
		if err := b.Wire(ps); err != nil {
			return nil, fmt.Errorf("propagators[%d] (%s): %w", i, ps.Kind, err)
		}
	}

	for i, cs := range spec.Contents {
		v, err := b.contentValue(cs)
		if err != nil {
			return nil, fmt.Errorf("contents[%d]: %w", i, err)
		}
		if err := b.Cells[cs.Cell].AddContent(v); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Wire attaches one declared propagator to its cells. Build calls it for
// every declared propagator; the REPL calls it to grow a network after
// construction.
func (b *Built) Wire(ps PropSpec) error {
	if arity, ok := kindArity[ps.Kind]; !ok {
		return fmt.Errorf("unrecognized kind: %q", ps.Kind)
	} else if len(ps.Cells) != arity {
		return fmt.Errorf("kind %q requires %d cells, got %d", ps.Kind, arity, len(ps.Cells))
	}
	if ps.Kind == KindConstant && ps.Value == nil {
		return fmt.Errorf("constant propagator requires a value")
	}

	cells := make([]*network.Cell, len(ps.Cells))
	for i, name := range ps.Cells {
		cell, ok := b.Cells[name]
		if !ok {
			return fmt.Errorf("undeclared cell: %q", name)
		}
		cells[i] = cell
	}

	switch ps.Kind {
	case KindAdder:
		_, err := network.Adder()(cells...)
		return err
	case KindSubtractor:
		_, err := network.Subtractor()(cells...)
		return err
	case KindMultiplier:
		_, err := network.Multiplier()(cells...)
		return err
	case KindDivider:
		_, err := network.Divider()(cells...)
		return err
	case KindConstant:
		v, err := specValue(*ps.Value)
		if err != nil {
			return err
		}
		_, err = network.Constant(v)(cells...)
		return err
	case KindSwitch:
		_, err := network.Switch()(cells...)
		return err
	case KindSum:
		return network.Sum(cells[0], cells[1], cells[2])
	case KindProduct:
		return network.Product(cells[0], cells[1], cells[2])
	case KindDifference:
		return network.Difference(cells[0], cells[1], cells[2])
	case KindQuotient:
		return network.Quotient(cells[0], cells[1], cells[2])
	case KindFtoC:
		return network.FahrenheitCelsius(cells[0], cells[1])
	default:
		return fmt.Errorf("unrecognized kind: %q", ps.Kind)
	}
}

// contentValue resolves a content entry into a value, wrapping it with
// its premise supports when any are named.
func (b *Built) contentValue(cs ContentSpec) (lattice.Value, error) {
	v, err := specValue(cs.Value)
	if err != nil {
		return nil, err
	}
	if len(cs.Supports) == 0 {
		return v, nil
	}

	premises := make([]*lattice.Premise, len(cs.Supports))
	for i, name := range cs.Supports {
		premises[i] = b.Premises[name]
	}
	return lattice.SupportedValue(v, premises...), nil
}

// specValue converts a ValueSpec into a lattice value.
func specValue(vs ValueSpec) (lattice.Value, error) {
	switch {
	case vs.Number != nil:
		return lattice.Number(*vs.Number), nil
	case vs.Boolean != nil:
		return lattice.Boolean(*vs.Boolean), nil
	case vs.Interval != nil:
		return lattice.NewInterval(vs.Interval.Lo, vs.Interval.Hi), nil
	default:
		return nil, fmt.Errorf("empty value")
	}
}
