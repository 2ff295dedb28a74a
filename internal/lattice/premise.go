package lattice

import (
	"fmt"
	"sync/atomic"
)

var premiseSeq atomic.Int64

// Premise is an atomic assumption with stable identity. Two premises with
// the same name are still distinct facts; identity is the pointer plus a
// process-unique id used for deterministic ordering in printed supports.
type Premise struct {
	id   int64
	name string
}

// NewPremise creates a premise. An empty name gets a generated one.
// The premise is not believed until registered with a Worldview; use
// Worldview.NewPremise for the usual believed-by-default behavior.
func NewPremise(name string) *Premise {
	id := premiseSeq.Add(1)
	if name == "" {
		name = fmt.Sprintf("premise-%d", id)
	}
	return &Premise{id: id, name: name}
}

// Name returns the premise's display name.
func (p *Premise) Name() string { return p.name }

func (p *Premise) String() string { return p.name }

// Worldview is the set of currently believed premises. It is an explicit
// context value: created once, owned by whoever owns the network, mutated
// only through BringIn and KickOut, and read by every strongest-consequence
// computation. It is NOT package-level state.
//
// Worldview is not safe for concurrent use. Propagation is single-threaded
// and the worldview is only touched between turns.
type Worldview struct {
	believed map[*Premise]bool
	byName   map[string]*Premise
}

// NewWorldview creates an empty worldview.
func NewWorldview() *Worldview {
	return &Worldview{
		believed: make(map[*Premise]bool),
		byName:   make(map[string]*Premise),
	}
}

// NewPremise creates a premise that is believed by default and registers
// it for name lookup.
func (w *Worldview) NewPremise(name string) *Premise {
	p := NewPremise(name)
	w.byName[p.name] = p
	w.believed[p] = true
	return p
}

// Lookup resolves a premise by name. Returns nil if no premise with that
// name has been registered.
func (w *Worldview) Lookup(name string) *Premise {
	return w.byName[name]
}

// BringIn marks a premise as believed. Returns true if the worldview
// changed.
func (w *Worldview) BringIn(p *Premise) bool {
	if p == nil || w.believed[p] {
		return false
	}
	w.believed[p] = true
	if _, ok := w.byName[p.name]; !ok {
		w.byName[p.name] = p
	}
	return true
}

// KickOut marks a premise as disbelieved. Returns true if the worldview
// changed.
func (w *Worldview) KickOut(p *Premise) bool {
	if p == nil || !w.believed[p] {
		return false
	}
	w.believed[p] = false
	return true
}

// Believes reports whether a single premise is currently believed.
func (w *Worldview) Believes(p *Premise) bool {
	return w.believed[p]
}

// BelievesName reports whether the premise registered under name is
// currently believed.
func (w *Worldview) BelievesName(name string) bool {
	p := w.byName[name]
	return p != nil && w.believed[p]
}

// BelievesAll reports whether every premise in the support is believed.
// The empty support is vacuously believed: an unsupported fact holds in
// every worldview.
func (w *Worldview) BelievesAll(s Support) bool {
	for _, p := range s.premises {
		if !w.believed[p] {
			return false
		}
	}
	return true
}
