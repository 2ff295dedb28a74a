package network

import (
	"github.com/roach88/propnet/internal/lattice"
)

// Constructor builds a propagator over cells. By convention the last cell
// is the output and the rest are inputs.
type Constructor func(cells ...*Cell) (*Propagator, error)

// Lift turns a pure function over values into a propagator constructor.
//
// The lifted computation queries each input cell under the live worldview
// and treats any Nothing input as "cannot compute yet": it skips writing
// the output entirely rather than producing a speculative value. The
// function's result, if informative, is merged into the output cell.
func Lift(name string, fn func(args ...lattice.Value) lattice.Value) Constructor {
	return func(cells ...*Cell) (*Propagator, error) {
		if len(cells) < 1 {
			return nil, NewWiringError("lifted propagator needs at least an output cell")
		}
		output := cells[len(cells)-1]
		inputs := cells[:len(cells)-1]

		run := func() error {
			args := make([]lattice.Value, len(inputs))
			for i, c := range inputs {
				v := c.Query()
				if lattice.IsNothing(lattice.BaseOf(v)) {
					return nil
				}
				args[i] = v
			}
			result := fn(args...)
			if result == nil || lattice.IsNothing(lattice.BaseOf(result)) {
				return nil
			}
			return output.AddContent(result)
		}

		return output.net.NewPropagator(name, cells, run)
	}
}

// LiftProc lifts a layered procedure (generic arithmetic) directly.
func LiftProc(proc *lattice.LayeredProc) Constructor {
	return Lift(proc.Name(), func(args ...lattice.Value) lattice.Value {
		return proc.Apply(args...)
	})
}

// Adder creates a propagator computing out = a + b.
func Adder() Constructor { return LiftProc(lattice.Add) }

// Subtractor creates a propagator computing out = a - b.
func Subtractor() Constructor { return LiftProc(lattice.Subtract) }

// Multiplier creates a propagator computing out = a * b.
func Multiplier() Constructor { return LiftProc(lattice.Multiply) }

// Divider creates a propagator computing out = a / b.
func Divider() Constructor { return LiftProc(lattice.Divide) }

// Constant creates a propagator that supplies a fixed value to its single
// bound cell.
func Constant(v lattice.Value) Constructor {
	return func(cells ...*Cell) (*Propagator, error) {
		if len(cells) != 1 {
			return nil, NewWiringError("constant propagator binds exactly one cell")
		}
		output := cells[0]
		run := func() error {
			return output.AddContent(v)
		}
		return output.net.NewPropagator("constant", cells, run)
	}
}

// Switch creates a conditional propagator over (control, input, output):
// the input passes through only while the control cell holds true.
// A false or unknown control produces no output at all; it does not
// retract what was previously propagated, because information only grows.
func Switch() Constructor {
	return Lift("switch", func(args ...lattice.Value) lattice.Value {
		control, input := args[0], args[1]
		if b, ok := lattice.BaseOf(control).(lattice.Boolean); ok && bool(b) {
			return input
		}
		return lattice.TheNothing
	})
}
