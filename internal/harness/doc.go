// Package harness provides conformance testing for constraint networks.
//
// The harness builds networks from CUE definitions, drives them with
// content additions and premise toggles, and validates the resulting
// cells and trace as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	network: path/to/network.cue     # or: definition: |
//	steps:
//	  - add: { cell: a, value: 3 }
//	  - add: { cell: b, value: 12, supports: [hypothesis] }
//	  - kick_out: hypothesis
//	  - add: { cell: total, value: 99 }
//	    expect_contradiction: true
//	assertions:
//	  - type: content
//	    cell: total
//	    value: 15
//	  - type: trace_count
//	    event: contradiction
//	    count: 1
//
// # Assertion Types
//
//   - content: a cell's queried content equals the expected value
//   - nothing: a cell carries no information under the current worldview
//   - trace_count: an event type appears exactly N times
//   - believes: a premise's final belief state
//
// # Deterministic Testing
//
// Every scenario runs against a fresh network with a fixed turn token and
// the network's logical clock, so identical runs produce identical traces
// for golden file comparison (see RunWithGolden).
package harness
