package harness

import (
	"fmt"
	"os"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/netdef"
	"github.com/roach88/propnet/internal/network"
)

// DefaultTurn is the turn token used when a scenario does not fix one.
const DefaultTurn = "test-turn-default"

// Result captures the outcome of running a scenario.
type Result struct {
	// Built is the constructed network with its name maps.
	Built *netdef.Built

	// Trace holds every event the network emitted, in order.
	Trace []network.Event

	// Contradictions are the rejected additions, in step order.
	Contradictions []error
}

// Run builds the scenario's network and executes its steps.
//
// Each scenario runs against a fresh network with a fixed turn token, so
// the trace is fully deterministic and suitable for golden comparison.
// A contradiction during a step marked expect_contradiction is recorded;
// an unexpected one (or a missing expected one) is an error.
func Run(s *Scenario) (*Result, error) {
	src := s.Definition
	filename := s.Name + ".cue"
	if s.Network != "" {
		data, err := os.ReadFile(s.Network)
		if err != nil {
			return nil, fmt.Errorf("read network definition: %w", err)
		}
		src = string(data)
		filename = s.Network
	}

	spec, err := netdef.CompileSource(filename, src)
	if err != nil {
		return nil, fmt.Errorf("compile network: %w", err)
	}

	turn := s.Turn
	if turn == "" {
		turn = DefaultTurn
	}

	recorder := network.NewMemoryRecorder()
	built, err := netdef.Build(spec,
		network.WithRecorder(recorder),
		network.WithTokenGenerator(network.NewFixedGenerator(turn)),
	)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	result := &Result{Built: built}

	for i, step := range s.Steps {
		if err := runStep(built, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	result.Trace = recorder.Events()
	return result, nil
}

// runStep executes one step against the built network.
func runStep(built *netdef.Built, step Step, result *Result) error {
	switch {
	case step.Add != nil:
		cell, ok := built.Cells[step.Add.Cell]
		if !ok {
			return fmt.Errorf("unknown cell %q", step.Add.Cell)
		}
		v, err := parseValue(step.Add.Value)
		if err != nil {
			return err
		}
		if len(step.Add.Supports) > 0 {
			premises := make([]*lattice.Premise, len(step.Add.Supports))
			for i, name := range step.Add.Supports {
				p, ok := built.Premises[name]
				if !ok {
					return fmt.Errorf("unknown premise %q", name)
				}
				premises[i] = p
			}
			v = lattice.SupportedValue(v, premises...)
		}

		err = cell.AddContent(v)
		if step.ExpectContradiction {
			if !network.IsContradiction(err) {
				return fmt.Errorf("expected contradiction on cell %q, got %v", step.Add.Cell, err)
			}
			result.Contradictions = append(result.Contradictions, err)
			return nil
		}
		return err

	case step.BringIn != "":
		return built.Net.BringInName(step.BringIn)

	case step.KickOut != "":
		return built.Net.KickOutName(step.KickOut)
	}

	return fmt.Errorf("empty step")
}

// parseValue converts a YAML step value into a lattice value.
// Numbers and booleans are written bare; intervals as {lo: ..., hi: ...}.
func parseValue(raw any) (lattice.Value, error) {
	switch v := raw.(type) {
	case int:
		return lattice.Number(float64(v)), nil
	case int64:
		return lattice.Number(float64(v)), nil
	case float64:
		return lattice.Number(v), nil
	case bool:
		return lattice.Boolean(v), nil
	case map[string]any:
		lo, loOK := toFloat(v["lo"])
		hi, hiOK := toFloat(v["hi"])
		if !loOK || !hiOK {
			return nil, fmt.Errorf("interval value requires numeric lo and hi fields")
		}
		return lattice.NewInterval(lo, hi), nil
	default:
		return nil, fmt.Errorf("unsupported value: %v (%T)", raw, raw)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
