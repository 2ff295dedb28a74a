package network

import (
	"fmt"

	"github.com/roach88/propnet/internal/lattice"
)

// Bidirectional constraint builders. Each wires a small cluster of lifted
// propagators so any one value can be derived from the others. These are
// the standard demo topologies; collaborators can always wire their own
// from the primitive constructors.

// Sum constrains total = a + b bidirectionally:
// knowing any two of a, b, total determines the third.
func Sum(a, b, total *Cell) error {
	if _, err := Adder()(a, b, total); err != nil {
		return fmt.Errorf("sum constraint: %w", err)
	}
	if _, err := Subtractor()(total, a, b); err != nil {
		return fmt.Errorf("sum constraint: %w", err)
	}
	if _, err := Subtractor()(total, b, a); err != nil {
		return fmt.Errorf("sum constraint: %w", err)
	}
	return nil
}

// Product constrains total = x * y bidirectionally.
func Product(x, y, total *Cell) error {
	if _, err := Multiplier()(x, y, total); err != nil {
		return fmt.Errorf("product constraint: %w", err)
	}
	if _, err := Divider()(total, y, x); err != nil {
		return fmt.Errorf("product constraint: %w", err)
	}
	if _, err := Divider()(total, x, y); err != nil {
		return fmt.Errorf("product constraint: %w", err)
	}
	return nil
}

// Difference constrains difference = minuend - subtrahend bidirectionally.
func Difference(minuend, subtrahend, difference *Cell) error {
	if _, err := Subtractor()(minuend, subtrahend, difference); err != nil {
		return fmt.Errorf("difference constraint: %w", err)
	}
	if _, err := Adder()(difference, subtrahend, minuend); err != nil {
		return fmt.Errorf("difference constraint: %w", err)
	}
	if _, err := Subtractor()(minuend, difference, subtrahend); err != nil {
		return fmt.Errorf("difference constraint: %w", err)
	}
	return nil
}

// Quotient constrains quotient = dividend / divisor bidirectionally.
func Quotient(dividend, divisor, quotient *Cell) error {
	if _, err := Divider()(dividend, divisor, quotient); err != nil {
		return fmt.Errorf("quotient constraint: %w", err)
	}
	if _, err := Multiplier()(quotient, divisor, dividend); err != nil {
		return fmt.Errorf("quotient constraint: %w", err)
	}
	if _, err := Divider()(dividend, quotient, divisor); err != nil {
		return fmt.Errorf("quotient constraint: %w", err)
	}
	return nil
}

// FahrenheitCelsius constrains f = 9/5*c + 32 bidirectionally, creating
// the constant and intermediate cells it needs. Cell names are prefixed
// with the fahrenheit cell's name so two converters in one network stay
// distinct.
func FahrenheitCelsius(f, c *Cell) error {
	n := f.net
	prefix := f.name

	thirtyTwo := n.NewCell(prefix + ".32")
	five := n.NewCell(prefix + ".5")
	nine := n.NewCell(prefix + ".9")
	fMinus32 := n.NewCell(prefix + ".f-32")
	cTimes9 := n.NewCell(prefix + ".c*9")

	if err := thirtyTwo.AddContent(lattice.Number(32)); err != nil {
		return fmt.Errorf("fahrenheit-celsius constraint: %w", err)
	}
	if err := five.AddContent(lattice.Number(5)); err != nil {
		return fmt.Errorf("fahrenheit-celsius constraint: %w", err)
	}
	if err := nine.AddContent(lattice.Number(9)); err != nil {
		return fmt.Errorf("fahrenheit-celsius constraint: %w", err)
	}

	// f = (f-32) + 32
	if err := Sum(fMinus32, thirtyTwo, f); err != nil {
		return err
	}
	// c*9 = c * 9
	if err := Product(c, nine, cTimes9); err != nil {
		return err
	}
	// (f-32) * 5 = c*9
	if err := Product(fMinus32, five, cTimes9); err != nil {
		return err
	}
	return nil
}
