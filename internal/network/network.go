package network

import (
	"log/slog"

	"github.com/roach88/propnet/internal/lattice"
)

// Network owns a constraint network: its cells, its propagators, the
// worldview, and the propagation machinery. Cells and propagators are
// created through the Network and live as long as it does; cells hold
// propagators only for notification (spec ownership: the network is the
// arena, cells keep weak-by-convention references).
//
// Thread-safety model: none. Propagation is deliberately single-threaded
// and synchronous; a cell write fires dependent propagators, which write
// other cells, until the alert queue drains. All mutation must happen
// from one goroutine.
type Network struct {
	wv       *lattice.Worldview
	clock    *Clock
	turnGen  TokenGenerator
	turn     string
	queue    *alertQueue
	draining bool
	recorder Recorder

	cells       []*Cell
	propagators []*Propagator

	// Propagators that have ever been alerted. A worldview toggle
	// re-alerts every one of them: global, non-incremental re-derivation.
	// Deliberate for interactive-scale networks, not an oversight.
	everAlerted []*Propagator
	alertedSet  map[*Propagator]bool
}

// Option configures a Network.
type Option func(*Network)

// WithRecorder attaches a trace recorder. Default: NopRecorder.
func WithRecorder(r Recorder) Option {
	return func(n *Network) {
		if r != nil {
			n.recorder = r
		}
	}
}

// WithTokenGenerator overrides the turn-token generator. Tests use
// NewFixedGenerator for deterministic traces.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(n *Network) {
		if g != nil {
			n.turnGen = g
		}
	}
}

// New creates an empty network with a fresh worldview.
func New(opts ...Option) *Network {
	n := &Network{
		wv:         lattice.NewWorldview(),
		clock:      NewClock(),
		turnGen:    UUIDv7Generator{},
		queue:      newAlertQueue(),
		recorder:   NopRecorder{},
		alertedSet: make(map[*Propagator]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.turn = n.turnGen.Generate()
	return n
}

// Worldview returns the network's worldview. Callers should toggle
// premises through BringIn/KickOut on the Network, not directly, so the
// re-derivation pass runs.
func (n *Network) Worldview() *lattice.Worldview {
	return n.wv
}

// Cells returns every cell in creation order.
func (n *Network) Cells() []*Cell {
	return n.cells
}

// Propagators returns every propagator in creation order.
func (n *Network) Propagators() []*Propagator {
	return n.propagators
}

// BeginTurn starts a new turn and returns its token. The CLI and harness
// call this once per external command so journal events group naturally.
func (n *Network) BeginTurn() string {
	n.turn = n.turnGen.Generate()
	return n.turn
}

// Turn returns the current turn token.
func (n *Network) Turn() string {
	return n.turn
}

// NewPremise creates a premise that is believed by default.
func (n *Network) NewPremise(name string) *lattice.Premise {
	p := n.wv.NewPremise(name)
	n.record(Event{
		Type:     EventPremiseToggled,
		Premise:  p.Name(),
		Believed: true,
	})
	return p
}

// BringIn marks a premise believed and re-derives the network: every
// propagator that has ever fired is alerted again so consequences that
// depend on the premise reappear. O(all propagators ever fired) per
// toggle; an explicit, accepted cost for interactive use.
func (n *Network) BringIn(p *lattice.Premise) {
	if !n.wv.BringIn(p) {
		return
	}
	n.record(Event{Type: EventPremiseToggled, Premise: p.Name(), Believed: true})
	n.realertAll()
}

// KickOut marks a premise disbelieved and re-derives the network.
func (n *Network) KickOut(p *lattice.Premise) {
	if !n.wv.KickOut(p) {
		return
	}
	n.record(Event{Type: EventPremiseToggled, Premise: p.Name(), Believed: false})
	n.realertAll()
}

// BringInName toggles a premise by name.
func (n *Network) BringInName(name string) error {
	p := n.wv.Lookup(name)
	if p == nil {
		return NewUnknownPremiseError(name)
	}
	n.BringIn(p)
	return nil
}

// KickOutName toggles a premise by name.
func (n *Network) KickOutName(name string) error {
	p := n.wv.Lookup(name)
	if p == nil {
		return NewUnknownPremiseError(name)
	}
	n.KickOut(p)
	return nil
}

// PremiseIn reports whether the premise with the given name is currently
// believed.
func (n *Network) PremiseIn(name string) bool {
	return n.wv.BelievesName(name)
}

// Believes reports whether a premise is currently believed.
func (n *Network) Believes(p *lattice.Premise) bool {
	return n.wv.Believes(p)
}

// alert registers a propagator as ever-alerted, enqueues it, and drains
// the queue unless a drain is already in progress higher up the call.
func (n *Network) alert(p *Propagator) {
	if !n.alertedSet[p] {
		n.alertedSet[p] = true
		n.everAlerted = append(n.everAlerted, p)
	}
	n.queue.enqueue(p)
	n.drain()
}

// realertAll enqueues every propagator that has ever fired and drains.
func (n *Network) realertAll() {
	if len(n.everAlerted) == 0 {
		return
	}
	slog.Debug("worldview changed, re-alerting all propagators",
		"count", len(n.everAlerted),
	)
	for _, p := range n.everAlerted {
		n.queue.enqueue(p)
	}
	n.drain()
}

// drain fires waiting propagators until the queue is empty. Re-entrant
// calls (a cell write during a firing) return immediately; the outermost
// drain picks up whatever was enqueued. This preserves the synchronous,
// immediate cascade without unbounded stack growth.
//
// A failure inside a propagator (typically a contradiction from writing
// its output) is caught here at the propagator boundary, reported, and
// does not stop the cascade: other propagators keep functioning.
func (n *Network) drain() {
	if n.draining {
		return
	}
	n.draining = true
	defer func() { n.draining = false }()

	for {
		p, ok := n.queue.dequeue()
		if !ok {
			return
		}
		n.record(Event{Type: EventPropagatorFired, Propagator: p.name})
		if err := p.fire(); err != nil {
			slog.Warn("propagator failed",
				"propagator", p.name,
				"error", err,
			)
		}
	}
}

// record stamps and delivers an event to the recorder.
func (n *Network) record(ev Event) {
	ev.Seq = n.clock.Next()
	ev.Turn = n.turn
	n.recorder.Record(ev)
}
