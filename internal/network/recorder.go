package network

// EventType distinguishes the kinds of events a network emits.
type EventType string

const (
	// EventCellCreated records a new cell joining the network.
	EventCellCreated EventType = "cell_created"
	// EventPropagatorCreated records a new propagator and its wiring.
	EventPropagatorCreated EventType = "propagator_created"
	// EventCellUpdated records a cell's content growing more informative.
	EventCellUpdated EventType = "cell_updated"
	// EventPropagatorFired records a propagator re-running its computation.
	EventPropagatorFired EventType = "propagator_fired"
	// EventContradiction records an irreconcilable write. The cell's prior
	// content was preserved.
	EventContradiction EventType = "contradiction"
	// EventPremiseToggled records a premise entering or leaving the
	// worldview.
	EventPremiseToggled EventType = "premise_toggled"
)

// Event is one entry in a network's trace. Values are pre-formatted
// strings so recorders (the sqlite journal in particular) never depend on
// lattice internals.
type Event struct {
	Seq        int64     `json:"seq"`
	Turn       string    `json:"turn"`
	Type       EventType `json:"type"`
	Cell       string    `json:"cell,omitempty"`
	Propagator string    `json:"propagator,omitempty"`
	Premise    string    `json:"premise,omitempty"`
	Old        string    `json:"old,omitempty"`
	New        string    `json:"new,omitempty"`
	Believed   bool      `json:"believed,omitempty"`
	Wiring     []string  `json:"wiring,omitempty"`
}

// Recorder receives every event a network emits. Record is called from
// the propagation path and must not write back into the network.
type Recorder interface {
	Record(Event)
}

// NopRecorder discards all events. The default for networks that are not
// being traced.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}

// MemoryRecorder keeps events in order for tests and the harness.
type MemoryRecorder struct {
	events []Event
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends the event.
func (r *MemoryRecorder) Record(ev Event) {
	r.events = append(r.events, ev)
}

// Events returns the recorded events in emission order.
func (r *MemoryRecorder) Events() []Event {
	return r.events
}

// OfType returns the recorded events with the given type, in order.
func (r *MemoryRecorder) OfType(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
