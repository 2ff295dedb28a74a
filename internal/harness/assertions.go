package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/network"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []network.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s cell=%s propagator=%s old=%s new=%s\n",
			i+1, event.Type, event.Cell, event.Propagator, event.Old, event.New)
	}

	return buf.String()
}

// Check evaluates every assertion against the result.
// Returns all failures (does not fail-fast).
func Check(s *Scenario, result *Result) []error {
	var errs []error
	for i, a := range s.Assertions {
		if err := checkOne(a, result); err != nil {
			errs = append(errs, fmt.Errorf("assertions[%d]: %w", i, err))
		}
	}
	return errs
}

func checkOne(a Assertion, result *Result) error {
	switch a.Type {
	case AssertContent:
		return checkContent(a, result)
	case AssertNothing:
		return checkNothing(a, result)
	case AssertTraceCount:
		return checkTraceCount(a, result)
	case AssertBelieves:
		return checkBelieves(a, result)
	default:
		return fmt.Errorf("unknown assertion type: %q", a.Type)
	}
}

// checkContent compares a cell's queried content (its base value) against
// the expected value.
func checkContent(a Assertion, result *Result) error {
	cell, ok := result.Built.Cells[a.Cell]
	if !ok {
		return fmt.Errorf("unknown cell %q", a.Cell)
	}

	expected, err := parseValue(a.Value)
	if err != nil {
		return err
	}

	actual := lattice.BaseOf(cell.Query())
	if !lattice.Equal(actual, expected) {
		return &AssertionError{
			Type:     AssertContent,
			Expected: fmt.Sprintf("cell %q = %s", a.Cell, lattice.Format(expected)),
			Actual:   fmt.Sprintf("cell %q = %s", a.Cell, lattice.Format(actual)),
			Trace:    result.Trace,
		}
	}
	return nil
}

// checkNothing verifies a cell carries no information under the current
// worldview.
func checkNothing(a Assertion, result *Result) error {
	cell, ok := result.Built.Cells[a.Cell]
	if !ok {
		return fmt.Errorf("unknown cell %q", a.Cell)
	}

	actual := cell.Query()
	if !lattice.IsNothing(lattice.BaseOf(actual)) {
		return &AssertionError{
			Type:     AssertNothing,
			Expected: fmt.Sprintf("cell %q = <nothing>", a.Cell),
			Actual:   fmt.Sprintf("cell %q = %s", a.Cell, lattice.Format(actual)),
			Trace:    result.Trace,
		}
	}
	return nil
}

// checkTraceCount verifies an event type appears exactly Count times.
func checkTraceCount(a Assertion, result *Result) error {
	count := 0
	for _, ev := range result.Trace {
		if string(ev.Type) == a.Event {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d %s events", a.Count, a.Event),
			Actual:   fmt.Sprintf("%d %s events", count, a.Event),
			Trace:    result.Trace,
		}
	}
	return nil
}

// checkBelieves verifies a premise's final belief state.
func checkBelieves(a Assertion, result *Result) error {
	if _, ok := result.Built.Premises[a.Premise]; !ok {
		return fmt.Errorf("unknown premise %q", a.Premise)
	}

	actual := result.Built.Net.PremiseIn(a.Premise)
	if actual != a.Believed {
		return &AssertionError{
			Type:     AssertBelieves,
			Expected: fmt.Sprintf("premise %q believed=%t", a.Premise, a.Believed),
			Actual:   fmt.Sprintf("premise %q believed=%t", a.Premise, actual),
			Trace:    result.Trace,
		}
	}
	return nil
}
