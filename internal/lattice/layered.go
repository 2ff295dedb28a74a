package lattice

import (
	"fmt"
	"sort"
	"strings"
)

// LayerName identifies an annotation layer on a Datum.
type LayerName string

// LayerSupport is the justification layer: the set of premises under which
// the base value holds. It is currently the only annotation layer, but the
// dispatch machinery below is layer-agnostic so new annotations (provenance,
// units, confidence) can ride along without touching arithmetic code.
const LayerSupport LayerName = "support"

// LayerValue is a sealed interface over annotation-layer payloads.
// Currently only Support implements it.
type LayerValue interface {
	layerValue()
}

// combineLayer merges two payloads of the same layer when flattening
// nested data. Support layers union; that is the only layer today.
func combineLayer(name LayerName, a, b LayerValue) LayerValue {
	if name == LayerSupport {
		as, aok := a.(Support)
		bs, bok := b.(Support)
		if aok && bok {
			return as.Union(bs)
		}
	}
	// Unknown layer: the newer payload wins.
	return b
}

// Datum is an immutable base value plus named annotation layers. Equality
// of data compares base values only (see Equal in value.go).
type Datum struct {
	base   Value
	layers map[LayerName]LayerValue
}

func (*Datum) latticeValue() {}

// NewDatum wraps a base value with annotation layers. Nested data are
// flattened immediately: if base is itself a Datum, its layers are pulled
// up and duplicate layers combined, so a Datum's base is never a Datum.
func NewDatum(base Value, layers map[LayerName]LayerValue) *Datum {
	merged := make(map[LayerName]LayerValue, len(layers))
	for inner, ok := base.(*Datum); ok; inner, ok = base.(*Datum) {
		for name, lv := range inner.layers {
			if existing, dup := merged[name]; dup {
				merged[name] = combineLayer(name, lv, existing)
			} else {
				merged[name] = lv
			}
		}
		base = inner.base
	}
	for name, lv := range layers {
		if existing, dup := merged[name]; dup {
			merged[name] = combineLayer(name, existing, lv)
		} else {
			merged[name] = lv
		}
	}
	return &Datum{base: base, layers: merged}
}

// SupportedValue wraps a value with a support built from the given
// premises. This is the public constructor collaborators use to introduce
// justified facts into a network.
func SupportedValue(v Value, premises ...*Premise) *Datum {
	return NewDatum(v, map[LayerName]LayerValue{
		LayerSupport: NewSupport(premises...),
	})
}

// Base returns the (already flattened) base value.
func (d *Datum) Base() Value { return d.base }

// Layer returns the payload of a named annotation layer.
func (d *Datum) Layer(name LayerName) (LayerValue, bool) {
	lv, ok := d.layers[name]
	return lv, ok
}

// LayerNames returns the annotation layer names in deterministic order.
func (d *Datum) LayerNames() []LayerName {
	names := make([]LayerName, 0, len(d.layers))
	for name := range d.layers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Support returns the support layer, or the empty support if absent.
func (d *Datum) Support() Support {
	return SupportOf(d)
}

func (d *Datum) String() string {
	if len(d.layers) == 0 {
		return Format(d.base)
	}
	parts := make([]string, 0, len(d.layers))
	for _, name := range d.LayerNames() {
		parts = append(parts, fmt.Sprintf("%s: %v", name, d.layers[name]))
	}
	return fmt.Sprintf("%s with %s", Format(d.base), strings.Join(parts, ", "))
}

// BaseOf strips the layer wrapper off a value, flattening as needed.
// Raw values are their own base.
func BaseOf(v Value) Value {
	if d, ok := v.(*Datum); ok {
		return d.base
	}
	return v
}

// LayerHandler computes one annotation layer of an operation's result from
// the base result and the (flattened) arguments. Returning ok=false omits
// the layer from the result.
type LayerHandler func(baseResult Value, args ...Value) (LayerValue, bool)

// BaseFunc is an operation over base values.
type BaseFunc func(args ...Value) Value

// LayeredProc runs a base operation once and independently combines each
// annotation layer present on the arguments. This single mechanism
// underlies the generic arithmetic and generic merge: the base code never
// sees justification bookkeeping.
type LayeredProc struct {
	name     string
	arity    int
	base     BaseFunc
	handlers map[LayerName]LayerHandler
}

// NewLayeredProc creates a layered procedure with no handlers registered.
func NewLayeredProc(name string, arity int, base BaseFunc) *LayeredProc {
	return &LayeredProc{
		name:     name,
		arity:    arity,
		base:     base,
		handlers: make(map[LayerName]LayerHandler),
	}
}

// SetHandler registers the handler for one annotation layer.
func (p *LayeredProc) SetHandler(name LayerName, h LayerHandler) {
	p.handlers[name] = h
}

// Name returns the operation name (used in logs and traces).
func (p *LayeredProc) Name() string { return p.name }

// Apply runs the layered procedure:
//
//  1. Flatten each argument (Datum construction already guarantees one
//     level, so flattening here is just reading the base).
//  2. Apply the base function to the base values.
//  3. Collect the union of annotation layers present on any argument.
//  4. Run the registered handler for each such layer.
//  5. Wrap base result and layer results in a Datum.
//
// The result is ALWAYS a Datum, even when no annotation layers are
// present, so callers see one result shape regardless of input mix.
// Equality compares base values only, so the wrapper is observationally
// free.
func (p *LayeredProc) Apply(args ...Value) Value {
	if p.arity > 0 && len(args) != p.arity {
		panic(fmt.Sprintf("layered procedure %s: want %d args, got %d", p.name, p.arity, len(args)))
	}

	baseArgs := make([]Value, len(args))
	for i, a := range args {
		baseArgs[i] = BaseOf(a)
	}
	baseResult := p.base(baseArgs...)

	present := make(map[LayerName]bool)
	for _, a := range args {
		if d, ok := a.(*Datum); ok {
			for name := range d.layers {
				present[name] = true
			}
		}
	}

	layerResults := make(map[LayerName]LayerValue, len(present))
	for name := range present {
		h, ok := p.handlers[name]
		if !ok {
			continue
		}
		if lv, ok := h(baseResult, args...); ok {
			layerResults[name] = lv
		}
	}

	return NewDatum(baseResult, layerResults)
}
