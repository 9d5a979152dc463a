// Package value provides a concrete, reference implementation of the
// Abstract Value contract (spec component C1). The Abstract Object core
// consumes only the capabilities listed below; the full primitive-value
// lattice (numbers, strings, booleans and their abstractions) is explicitly
// out of scope for this module, so Value carries a single opaque
// "primitive" descriptor rather than a real numeric/string abstraction.
package value

import (
	"fmt"
	"strings"

	"abstractobject/internal/objectlabel"
)

// Value is an immutable lattice element describing a single slot: a
// presence facet (maybe-present / maybe-absent), an optional primitive
// descriptor, a set of referenced object labels, and a modified bit.
// Values are small and passed by value throughout this module.
type Value struct {
	unknown      bool
	none         bool
	maybePresent bool
	maybeAbsent  bool
	modified     bool
	primitive    string // opaque facet descriptor; "" means no primitive facet
	labels       objectlabel.Set
}

// MakeNone returns the bottom of the lattice: an impossible value.
func MakeNone() Value {
	return Value{none: true}
}

// MakeUnknown returns the top of the lattice: maybe anything, maybe
// modified.
func MakeUnknown() Value {
	return Value{unknown: true, modified: true}
}

// MakeAbsentModified returns a value that is definitely absent and flagged
// as modified. This is the value every slot of a freshly allocated object
// starts out as (see the makeAbsentModified object factory).
func MakeAbsentModified() Value {
	return Value{maybeAbsent: true, modified: true}
}

// MakePresent builds a present, unmodified value carrying the given
// primitive descriptor and object labels.
func MakePresent(primitive string, labels ...objectlabel.Label) Value {
	return Value{maybePresent: true, primitive: primitive, labels: objectlabel.NewSet(labels...)}
}

// MakeModified returns a copy of v with the modified bit set.
func MakeModified(v Value) Value {
	v.modified = true
	return v
}

// IsUnknown reports whether v is the lattice top.
func (v Value) IsUnknown() bool { return v.unknown }

// IsNone reports whether v is the lattice bottom.
func (v Value) IsNone() bool { return v.none }

// IsMaybePresent reports whether v might denote a present slot.
func (v Value) IsMaybePresent() bool {
	return !v.none && (v.unknown || v.maybePresent)
}

// IsMaybeAbsent reports whether v might denote an absent slot.
func (v Value) IsMaybeAbsent() bool {
	return !v.none && (v.unknown || v.maybeAbsent)
}

// IsMaybePresentOrUnknown reports whether v might be present, counting
// unknown as a possible presence.
func (v Value) IsMaybePresentOrUnknown() bool {
	return v.unknown || (!v.none && v.maybePresent)
}

// IsMaybeModified reports the modified facet.
func (v Value) IsMaybeModified() bool { return v.modified }

// RestrictToNotModified returns a copy of v with the modified bit cleared.
// Applying it twice is the same as applying it once.
func (v Value) RestrictToNotModified() Value {
	v.modified = false
	return v
}

// GetObjectLabels returns the set of object labels v references. Unknown
// values reference no labels, per the Value contract.
func (v Value) GetObjectLabels() objectlabel.Set {
	if v.unknown || v.none {
		return objectlabel.Empty
	}
	return v.labels
}

// Summarize rewrites every embedded object label through w. The modified
// bit is preserved (summarization is an identity on the modified facet).
func (v Value) Summarize(w objectlabel.Witness) Value {
	if v.unknown || v.none || v.labels.Len() == 0 {
		return v
	}
	v.labels = v.labels.Summarize(w)
	return v
}

// ReplaceObjectLabel renames a single embedded label.
func (v Value) ReplaceObjectLabel(old, replacement objectlabel.Label) Value {
	if v.unknown || v.none {
		return v
	}
	v.labels = v.labels.Replace(old, replacement)
	return v
}

// ReplaceObjectLabels renames every embedded label present as a key of
// mapping.
func (v Value) ReplaceObjectLabels(mapping map[objectlabel.Label]objectlabel.Label) Value {
	if v.unknown || v.none {
		return v
	}
	v.labels = v.labels.ReplaceAll(mapping)
	return v
}

// Trim reduces v to the portion not subsumed by other: embedded labels
// also referenced by other are dropped, and a presence facet also carried
// by other is cleared. A fully-unknown other subsumes everything.
func (v Value) Trim(other Value) Value {
	if other.unknown {
		return Value{modified: v.modified}
	}
	if v.none || other.none {
		return v
	}
	v.maybePresent = v.maybePresent && !other.maybePresent
	v.maybeAbsent = v.maybeAbsent && !other.maybeAbsent
	v.labels = v.labels.Difference(other.labels)
	if v.unknown && other.unknown {
		v.unknown = false
	}
	return v
}

// Remove assumes v subsumes other and returns the difference: the part of
// v not explained by other.
func (v Value) Remove(other Value) Value {
	if v.none || other.none {
		return v
	}
	v.labels = v.labels.Difference(other.labels)
	if other.maybePresent {
		v.maybePresent = false
	}
	if other.maybeAbsent {
		v.maybeAbsent = false
	}
	return v
}

// Equal reports whether v and other are structurally identical.
func (v Value) Equal(other Value) bool {
	return v.unknown == other.unknown &&
		v.none == other.none &&
		v.maybePresent == other.maybePresent &&
		v.maybeAbsent == other.maybeAbsent &&
		v.modified == other.modified &&
		v.primitive == other.primitive &&
		v.labels.Equal(other.labels)
}

// Hash returns a structural hash consistent with Equal: equal values hash
// equally.
func (v Value) Hash() uint64 {
	var h uint64 = 14695981039346656037
	mix := func(b bool, mult uint64) {
		if b {
			h ^= mult
			h *= 1099511628211
		}
	}
	mix(v.unknown, 2)
	mix(v.none, 3)
	mix(v.maybePresent, 5)
	mix(v.maybeAbsent, 7)
	mix(v.modified, 11)
	for i := 0; i < len(v.primitive); i++ {
		h ^= uint64(v.primitive[i])
		h *= 1099511628211
	}
	h ^= v.labels.Hash() * 13
	return h
}

// Diff renders a short human-readable description of how v differs from
// old. Output is deterministic.
func (v Value) Diff(old Value) string {
	if v.Equal(old) {
		return ""
	}
	var parts []string
	if old.unknown != v.unknown || old.none != v.none {
		parts = append(parts, fmt.Sprintf("%s->%s", old.kindString(), v.kindString()))
	}
	if old.maybePresent != v.maybePresent {
		parts = append(parts, fmt.Sprintf("maybePresent:%v->%v", old.maybePresent, v.maybePresent))
	}
	if old.maybeAbsent != v.maybeAbsent {
		parts = append(parts, fmt.Sprintf("maybeAbsent:%v->%v", old.maybeAbsent, v.maybeAbsent))
	}
	if old.modified != v.modified {
		parts = append(parts, fmt.Sprintf("modified:%v->%v", old.modified, v.modified))
	}
	if old.primitive != v.primitive {
		parts = append(parts, fmt.Sprintf("primitive:%q->%q", old.primitive, v.primitive))
	}
	if !old.labels.Equal(v.labels) {
		parts = append(parts, fmt.Sprintf("labels:%s->%s", old.labels, v.labels))
	}
	if len(parts) == 0 {
		return "(modified bit only)"
	}
	return strings.Join(parts, ", ")
}

func (v Value) kindString() string {
	switch {
	case v.none:
		return "none"
	case v.unknown:
		return "unknown"
	default:
		return "value"
	}
}

func (v Value) String() string {
	if v.none {
		return "NONE"
	}
	if v.unknown {
		return "UNKNOWN"
	}
	var flags []string
	if v.maybePresent {
		flags = append(flags, "present")
	}
	if v.maybeAbsent {
		flags = append(flags, "absent")
	}
	if v.modified {
		flags = append(flags, "modified")
	}
	if v.primitive != "" {
		flags = append(flags, v.primitive)
	}
	if v.labels.Len() > 0 {
		flags = append(flags, v.labels.String())
	}
	return strings.Join(flags, "|")
}
