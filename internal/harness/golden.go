package harness

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/propnet/internal/lattice"
)

// TraceSnapshot captures the complete trace and final cell contents for
// a scenario execution. Serialized deterministically for golden file
// comparison.
type TraceSnapshot struct {
	ScenarioName string            `json:"scenario_name"`
	Turn         string            `json:"turn,omitempty"`
	Trace        []snapshotEvent   `json:"trace"`
	Cells        map[string]string `json:"cells"`
}

type snapshotEvent struct {
	Seq        int64    `json:"seq"`
	Type       string   `json:"type"`
	Cell       string   `json:"cell,omitempty"`
	Propagator string   `json:"propagator,omitempty"`
	Premise    string   `json:"premise,omitempty"`
	Old        string   `json:"old,omitempty"`
	New        string   `json:"new,omitempty"`
	Believed   bool     `json:"believed,omitempty"`
	Wiring     []string `json:"wiring,omitempty"`
}

// Snapshot builds the serializable view of a result. Cell contents are
// formatted queried values; map keys serialize sorted, so the encoding
// is stable.
func Snapshot(s *Scenario, result *Result) *TraceSnapshot {
	snap := &TraceSnapshot{
		ScenarioName: s.Name,
		Turn:         s.Turn,
		Cells:        make(map[string]string, len(result.Built.Cells)),
	}

	for _, ev := range result.Trace {
		snap.Trace = append(snap.Trace, snapshotEvent{
			Seq:        ev.Seq,
			Type:       string(ev.Type),
			Cell:       ev.Cell,
			Propagator: ev.Propagator,
			Premise:    ev.Premise,
			Old:        ev.Old,
			New:        ev.New,
			Believed:   ev.Believed,
			Wiring:     ev.Wiring,
		})
	}

	names := make([]string, 0, len(result.Built.Cells))
	for name := range result.Built.Cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		snap.Cells[name] = lattice.Format(result.Built.Cells[name].Query())
	}

	return snap
}

// RunWithGolden executes a scenario, checks its assertions, and compares
// the trace snapshot against a golden file stored in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, err := range Check(scenario, result) {
		t.Error(err)
	}

	data, err := json.MarshalIndent(Snapshot(scenario, result), "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
