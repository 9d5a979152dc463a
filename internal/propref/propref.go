// Package propref implements the Property Reference tagged selector (spec
// component C5): a canonical sum type used by transfer functions to read or
// write a single slot of an Abstract Object uniformly. It is implemented as
// a tag plus payload rather than subtype polymorphism, and callers are
// expected to switch exhaustively on Kind.
package propref

import "fmt"

// Kind tags which slot a Ref selects.
type Kind int

const (
	// Ordinary selects a named, non-internal property.
	Ordinary Kind = iota
	// DefaultArray selects the default value standing in for every
	// array-index property not explicitly listed.
	DefaultArray
	// DefaultNonArray selects the default value standing in for every
	// non-array-index property not explicitly listed.
	DefaultNonArray
	// InternalValue selects the [[Value]] internal slot.
	InternalValue
	// InternalPrototype selects the [[Prototype]] internal slot.
	InternalPrototype
)

func (k Kind) String() string {
	switch k {
	case Ordinary:
		return "Ordinary"
	case DefaultArray:
		return "DefaultArray"
	case DefaultNonArray:
		return "DefaultNonArray"
	case InternalValue:
		return "InternalValue"
	case InternalPrototype:
		return "InternalPrototype"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Ref is a Property Reference: a tagged selector for one Abstract Object
// slot. Name is only meaningful when Kind is Ordinary.
type Ref struct {
	Kind Kind
	Name string
}

// NewOrdinary builds a reference to the named property.
func NewOrdinary(name string) Ref { return Ref{Kind: Ordinary, Name: name} }

// NewDefaultArray builds a reference to the default-array slot.
func NewDefaultArray() Ref { return Ref{Kind: DefaultArray} }

// NewDefaultNonArray builds a reference to the default-non-array slot.
func NewDefaultNonArray() Ref { return Ref{Kind: DefaultNonArray} }

// NewInternalValue builds a reference to the [[Value]] slot.
func NewInternalValue() Ref { return Ref{Kind: InternalValue} }

// NewInternalPrototype builds a reference to the [[Prototype]] slot.
func NewInternalPrototype() Ref { return Ref{Kind: InternalPrototype} }

func (r Ref) String() string {
	if r.Kind == Ordinary {
		return fmt.Sprintf("Ordinary(%q)", r.Name)
	}
	return r.Kind.String()
}
