package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios build a network from a definition, drive it with content
// additions and premise toggles, and assert on the resulting cells and
// trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Network is a path to a CUE network definition file.
	// Relative paths resolve against the scenario file location.
	Network string `yaml:"network,omitempty"`

	// Definition is an inline CUE network definition. Exactly one of
	// Network and Definition must be set.
	Definition string `yaml:"definition,omitempty"`

	// Steps drive the network in order.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the final cells and trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Turn is an optional fixed turn token for deterministic golden
	// files. Defaults to "test-turn-default".
	Turn string `yaml:"turn,omitempty"`
}

// Step is one action against the network. Exactly one field group is
// set per step.
type Step struct {
	// Add adds content to a cell.
	Add *AddStep `yaml:"add,omitempty"`

	// BringIn names a premise to believe.
	BringIn string `yaml:"bring_in,omitempty"`

	// KickOut names a premise to stop believing.
	KickOut string `yaml:"kick_out,omitempty"`

	// ExpectContradiction marks an Add step that must be rejected.
	ExpectContradiction bool `yaml:"expect_contradiction,omitempty"`
}

// AddStep adds a value to a cell, optionally supported by premises.
type AddStep struct {
	Cell     string   `yaml:"cell"`
	Value    any      `yaml:"value"`
	Supports []string `yaml:"supports,omitempty"`
}

// Assertion validates a cell or the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "content": cell's queried content equals the expected value
	// - "nothing": cell's queried content carries no information
	// - "trace_count": event type appears exactly N times
	// - "believes": premise belief state matches Believed
	Type string `yaml:"type"`

	// Cell names the cell (content, nothing).
	Cell string `yaml:"cell,omitempty"`

	// Value is the expected content (content).
	Value any `yaml:"value,omitempty"`

	// Event is the event type (trace_count).
	Event string `yaml:"event,omitempty"`

	// Count is the expected number of events (trace_count).
	Count int `yaml:"count,omitempty"`

	// Premise names the premise (believes).
	Premise string `yaml:"premise,omitempty"`

	// Believed is the expected belief state (believes).
	Believed bool `yaml:"believed,omitempty"`
}

// Assertion type constants.
const (
	AssertContent    = "content"
	AssertNothing    = "nothing"
	AssertTraceCount = "trace_count"
	AssertBelieves   = "believes"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Network paths resolve relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Network != "" && !filepath.IsAbs(scenario.Network) {
		scenario.Network = filepath.Join(filepath.Dir(path), scenario.Network)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and step shape.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if (s.Network == "") == (s.Definition == "") {
		return fmt.Errorf("exactly one of network and definition is required")
	}

	for i, step := range s.Steps {
		set := 0
		if step.Add != nil {
			set++
		}
		if step.BringIn != "" {
			set++
		}
		if step.KickOut != "" {
			set++
		}
		if set != 1 {
			return fmt.Errorf("steps[%d]: exactly one of add, bring_in, kick_out is required", i)
		}
		if step.ExpectContradiction && step.Add == nil {
			return fmt.Errorf("steps[%d]: expect_contradiction requires add", i)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertContent:
			if a.Cell == "" || a.Value == nil {
				return fmt.Errorf("assertions[%d]: content requires cell and value", i)
			}
		case AssertNothing:
			if a.Cell == "" {
				return fmt.Errorf("assertions[%d]: nothing requires cell", i)
			}
		case AssertTraceCount:
			if a.Event == "" {
				return fmt.Errorf("assertions[%d]: trace_count requires event", i)
			}
		case AssertBelieves:
			if a.Premise == "" {
				return fmt.Errorf("assertions[%d]: believes requires premise", i)
			}
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}

	return nil
}
