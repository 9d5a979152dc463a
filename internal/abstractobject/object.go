// Package abstractobject implements the Abstract Object lattice element at
// the center of the analyzer: a sound over-approximation of the concrete
// objects that may appear at a program point during any real execution. It
// composes a lattice semantics (join lives in the enclosing store and is
// not reimplemented here), per-property modified flags for a differential
// fixpoint, copy-on-write sharing of the properties mapping, a
// default-property mechanism splitting the property-name space into
// array-index and non-array names, and operations that rewrite embedded
// object identities.
package abstractobject

import (
	"abstractobject/internal/errors"
	"abstractobject/internal/objectlabel"
	"abstractobject/internal/options"
	"abstractobject/internal/propref"
	"abstractobject/internal/scopechain"
	"abstractobject/internal/telemetry"
	"abstractobject/internal/value"
)

// Object is the Abstract Object: a mapping from property name to Value plus
// the two default values, the two internal slots, and the scope chain slot.
// It is constructed by the factories below or by Copy, and mutated in
// place by transfer functions while held uniquely by the current analysis
// state.
type Object struct {
	properties         map[string]value.Value
	defaultArray       value.Value
	defaultNonArray    value.Value
	internalPrototype  value.Value
	internalValue      value.Value
	scope              *scopechain.Chain
	scopeUnknown       bool
	writableProperties bool
}

func newObject(v value.Value, scopeUnknown bool) *Object {
	telemetry.RecordObjectCreated()
	return &Object{
		properties:         make(map[string]value.Value),
		defaultArray:       v,
		defaultNonArray:    v,
		internalPrototype:  v,
		internalValue:      v,
		scope:              nil,
		scopeUnknown:       scopeUnknown,
		writableProperties: true,
	}
}

// MakeAbsentModified returns an object whose every slot and both defaults
// are "absent and modified", with an empty properties map and an empty,
// known (not unknown) scope.
func MakeAbsentModified() *Object {
	return newObject(value.MakeAbsentModified(), false)
}

// MakeNone returns the lattice bottom: every slot is Value bottom, scope
// empty and known.
func MakeNone() *Object {
	return newObject(value.MakeNone(), false)
}

// MakeUnknown returns the lattice top: every slot is Value top, properties
// empty, scope unknown.
func MakeUnknown() *Object {
	return newObject(value.MakeUnknown(), true)
}

// Copy produces an object equal to o. With opts.CopyOnWriteDisabled the
// properties mapping is eagerly cloned and both objects end up writable.
// Otherwise (the default) properties is shared between o and the result
// and both become read-only until the next write triggers makeWritable.
func Copy(o *Object, opts options.Options) *Object {
	telemetry.RecordObjectCreated()
	if opts.CopyOnWriteDisabled {
		return &Object{
			properties:         cloneProperties(o.properties),
			defaultArray:       o.defaultArray,
			defaultNonArray:    o.defaultNonArray,
			internalPrototype:  o.internalPrototype,
			internalValue:      o.internalValue,
			scope:              o.scope,
			scopeUnknown:       o.scopeUnknown,
			writableProperties: true,
		}
	}

	o.writableProperties = false
	return &Object{
		properties:         o.properties,
		defaultArray:       o.defaultArray,
		defaultNonArray:    o.defaultNonArray,
		internalPrototype:  o.internalPrototype,
		internalValue:      o.internalValue,
		scope:              o.scope,
		scopeUnknown:       o.scopeUnknown,
		writableProperties: false,
	}
}

func cloneProperties(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// makeWritable is idempotent: it clones the properties mapping and flips
// writableProperties on the first call after a COW copy, and is a no-op on
// every call after that. Only an actual clone counts toward the
// telemetry counter.
func (o *Object) makeWritable() {
	if o.writableProperties {
		return
	}
	o.properties = cloneProperties(o.properties)
	o.writableProperties = true
	telemetry.RecordMakeWritable()
}

// GetProperty resolves the default policy: it returns the explicit value
// for name if present, otherwise the array or non-array default depending
// on whether name is an array-index name. It never returns absent on its
// own — absence is represented by the returned Value being maybe-absent.
func (o *Object) GetProperty(name string) value.Value {
	if v, ok := o.properties[name]; ok {
		return v
	}
	if IsArrayIndex(name) {
		return o.defaultArray
	}
	return o.defaultNonArray
}

// SetProperty records name -> v unconditionally; no canonicalization
// against the applicable default is performed here (that is the join
// operator's responsibility).
func (o *Object) SetProperty(name string, v value.Value) {
	o.makeWritable()
	o.properties[name] = v
}

// RemoveProperty deletes an explicit property, falling back to the
// applicable default for subsequent reads of name.
func (o *Object) RemoveProperty(name string) {
	o.makeWritable()
	delete(o.properties, name)
}

func validDefault(v value.Value) bool {
	return v.IsUnknown() || !v.IsMaybePresent() || v.IsMaybeAbsent()
}

// SetDefaultArrayProperty enforces the default invariant: v must be
// unknown, or not definitely present without also being maybe-absent.
func (o *Object) SetDefaultArrayProperty(v value.Value) error {
	if !validDefault(v) {
		return errors.Newf("setDefaultArrayProperty",
			"default array value must be unknown, maybe-absent, or not maybe-present, got %s", v)
	}
	o.defaultArray = v
	return nil
}

// SetDefaultNonArrayProperty enforces the same invariant as
// SetDefaultArrayProperty for the non-array default.
func (o *Object) SetDefaultNonArrayProperty(v value.Value) error {
	if !validDefault(v) {
		return errors.Newf("setDefaultNonArrayProperty",
			"default non-array value must be unknown, maybe-absent, or not maybe-present, got %s", v)
	}
	o.defaultNonArray = v
	return nil
}

// GetValue dispatches on ref's tag to read the selected slot.
func (o *Object) GetValue(ref propref.Ref) (value.Value, error) {
	switch ref.Kind {
	case propref.Ordinary:
		return o.GetProperty(ref.Name), nil
	case propref.DefaultArray:
		return o.defaultArray, nil
	case propref.DefaultNonArray:
		return o.defaultNonArray, nil
	case propref.InternalValue:
		return o.internalValue, nil
	case propref.InternalPrototype:
		return o.internalPrototype, nil
	default:
		return value.Value{}, errors.Newf("getValue", "unrecognized property reference tag %v", ref.Kind)
	}
}

// SetValue dispatches on ref's tag to write the selected slot.
func (o *Object) SetValue(ref propref.Ref, v value.Value) error {
	switch ref.Kind {
	case propref.Ordinary:
		o.SetProperty(ref.Name, v)
		return nil
	case propref.DefaultArray:
		return o.SetDefaultArrayProperty(v)
	case propref.DefaultNonArray:
		return o.SetDefaultNonArrayProperty(v)
	case propref.InternalValue:
		o.internalValue = v
		return nil
	case propref.InternalPrototype:
		o.internalPrototype = v
		return nil
	default:
		return errors.Newf("setValue", "unrecognized property reference tag %v", ref.Kind)
	}
}

// IsNone reports whether every slot is Value bottom and the scope is the
// empty, known scope.
func (o *Object) IsNone() bool {
	if o.scopeUnknown || o.scope != nil {
		return false
	}
	if !o.defaultArray.IsNone() || !o.defaultNonArray.IsNone() {
		return false
	}
	if !o.internalPrototype.IsNone() || !o.internalValue.IsNone() {
		return false
	}
	for _, v := range o.properties {
		if !v.IsNone() {
			return false
		}
	}
	return true
}

// IsUnknown reports whether every slot is Value top and the scope is
// unknown.
func (o *Object) IsUnknown() bool {
	if !o.scopeUnknown {
		return false
	}
	if !o.defaultArray.IsUnknown() || !o.defaultNonArray.IsUnknown() {
		return false
	}
	if !o.internalPrototype.IsUnknown() || !o.internalValue.IsUnknown() {
		return false
	}
	for _, v := range o.properties {
		if !v.IsUnknown() {
			return false
		}
	}
	return true
}

// IsSomeNonArrayPropertyUnknown reports whether the non-array default or
// any explicit non-array-index property is Value top.
func (o *Object) IsSomeNonArrayPropertyUnknown() bool {
	if o.defaultNonArray.IsUnknown() {
		return true
	}
	for name, v := range o.properties {
		if !IsArrayIndex(name) && v.IsUnknown() {
			return true
		}
	}
	return false
}

func scopeEqual(a, b *scopechain.Chain) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

// Equal reports structural equality over every field. Two null scopes are
// equal; a null and a non-null scope are not.
func (o *Object) Equal(other *Object) bool {
	if len(o.properties) != len(other.properties) {
		return false
	}
	for k, v := range o.properties {
		ov, ok := other.properties[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return o.defaultArray.Equal(other.defaultArray) &&
		o.defaultNonArray.Equal(other.defaultNonArray) &&
		o.internalPrototype.Equal(other.internalPrototype) &&
		o.internalValue.Equal(other.internalValue) &&
		o.scopeUnknown == other.scopeUnknown &&
		scopeEqual(o.scope, other.scope)
}

// Hash combines the hashes of every field with fixed, distinct multipliers
// so structurally equal objects hash equally.
func (o *Object) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, k := range sortedKeys(o.properties) {
		h ^= hashString(k) * 17
		h ^= o.properties[k].Hash() * 19
	}
	h ^= o.defaultArray.Hash() * 23
	h ^= o.defaultNonArray.Hash() * 29
	h ^= o.internalPrototype.Hash() * 31
	h ^= o.internalValue.Hash() * 37
	if o.scopeUnknown {
		h ^= 41
	}
	if o.scope != nil {
		h ^= o.scope.Hash() * 43
	}
	return h
}

func hashString(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
