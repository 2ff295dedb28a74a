package lattice

import (
	"sort"
	"strings"
)

// Support is an immutable set of premises that jointly justify a value.
// Premises are kept sorted by creation id so printed supports and iteration
// order are deterministic.
type Support struct {
	premises []*Premise
}

func (Support) layerValue() {}

// NewSupport builds a support from premises, deduplicating and ordering.
func NewSupport(premises ...*Premise) Support {
	if len(premises) == 0 {
		return Support{}
	}
	seen := make(map[*Premise]bool, len(premises))
	out := make([]*Premise, 0, len(premises))
	for _, p := range premises {
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return Support{premises: out}
}

// Premises returns the premises in deterministic order. Callers must not
// mutate the returned slice.
func (s Support) Premises() []*Premise { return s.premises }

// Len returns the number of premises in the support.
func (s Support) Len() int { return len(s.premises) }

// Empty reports whether the support depends on no premises at all.
func (s Support) Empty() bool { return len(s.premises) == 0 }

// Union combines two supports. A fact derived from two justified facts
// needs every premise of both.
func (s Support) Union(o Support) Support {
	if s.Empty() {
		return o
	}
	if o.Empty() {
		return s
	}
	merged := make([]*Premise, 0, len(s.premises)+len(o.premises))
	merged = append(merged, s.premises...)
	merged = append(merged, o.premises...)
	return NewSupport(merged...)
}

// Subset reports whether every premise of s is also in o.
func (s Support) Subset(o Support) bool {
	if len(s.premises) > len(o.premises) {
		return false
	}
	in := make(map[*Premise]bool, len(o.premises))
	for _, p := range o.premises {
		in[p] = true
	}
	for _, p := range s.premises {
		if !in[p] {
			return false
		}
	}
	return true
}

// SameAs reports set equality.
func (s Support) SameAs(o Support) bool {
	return len(s.premises) == len(o.premises) && s.Subset(o)
}

// MoreInformative reports whether s is strictly more informative than o:
// a proper subset reaches the same conclusion from fewer assumptions.
func (s Support) MoreInformative(o Support) bool {
	return len(s.premises) < len(o.premises) && s.Subset(o)
}

func (s Support) String() string {
	if s.Empty() {
		return "{}"
	}
	names := make([]string, len(s.premises))
	for i, p := range s.premises {
		names[i] = p.name
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// SupportOf extracts the support layer of a value. Raw values have the
// empty support.
func SupportOf(v Value) Support {
	if d, ok := v.(*Datum); ok {
		if s, ok := d.Layer(LayerSupport); ok {
			if sup, ok := s.(Support); ok {
				return sup
			}
		}
	}
	return Support{}
}

// Per-operation support handlers. Union-everything would be sound but
// needlessly weak: an operand that cannot have influenced the result must
// not drag its premises into the result's justification.

// supportAdd excludes operands whose base value is the additive identity.
// Adding zero contributes nothing, so believing its premises is not
// required for the sum to hold.
func supportAdd(base Value, args ...Value) (LayerValue, bool) {
	var contributing []Support
	var all []Support
	for _, a := range args {
		s := SupportOf(a)
		all = append(all, s)
		if !Equal(BaseOf(a), Number(0)) {
			contributing = append(contributing, s)
		}
	}
	if len(contributing) == 0 {
		// Every operand is zero. The first justification suffices.
		if len(all) == 0 {
			return Support{}, true
		}
		return all[0], true
	}
	out := contributing[0]
	for _, s := range contributing[1:] {
		out = out.Union(s)
	}
	return out, true
}

// supportMultiply gives a zero operand sole credit for a zero product.
// The other factor is causally irrelevant: zero times anything is zero.
func supportMultiply(base Value, args ...Value) (LayerValue, bool) {
	for _, a := range args {
		if Equal(BaseOf(a), Number(0)) {
			return SupportOf(a), true
		}
	}
	out := Support{}
	for _, a := range args {
		out = out.Union(SupportOf(a))
	}
	return out, true
}

// supportDivide always includes the divisor's support (a disbelieved
// divisor could be zero, which would invalidate any quotient), except when
// the dividend is zero, where the dividend alone justifies the result.
func supportDivide(base Value, args ...Value) (LayerValue, bool) {
	if len(args) > 0 && Equal(BaseOf(args[0]), Number(0)) {
		return SupportOf(args[0]), true
	}
	out := Support{}
	for _, a := range args {
		out = out.Union(SupportOf(a))
	}
	return out, true
}

// supportMerge picks the justification for a merged fact. Three cases:
//
//   - confirm: the merged value equals the old one and the new fact implies
//     it. Keep whichever support is strictly more informative.
//   - override: the merged value equals the new one (strictly more
//     specific). The new support replaces the old.
//   - combine: the merge produced genuinely new information. Both supports
//     are needed, so union them.
func supportMerge(base Value, args ...Value) (LayerValue, bool) {
	if len(args) != 2 {
		return Support{}, false
	}
	content, increment := args[0], args[1]
	s1 := SupportOf(content)
	s2 := SupportOf(increment)
	v1 := BaseOf(content)
	v2 := BaseOf(increment)

	if Equal(base, v1) {
		if implies(v2, base) && s2.MoreInformative(s1) {
			return s2, true
		}
		return s1, true
	}
	if Equal(base, v2) {
		return s2, true
	}
	return s1.Union(s2), true
}

// implies reports whether v1 is at least as specific as v2: merging the
// two yields v1's information back.
func implies(v1, v2 Value) bool {
	return Equal(mergeBase(v1, v2), v1)
}
