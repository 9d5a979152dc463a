package abstractobject

import (
	"abstractobject/internal/errors"
	"abstractobject/internal/objectlabel"
	"abstractobject/internal/scopechain"
)

// Summarize adapts o in place when its call context or allocation site
// transitions from singleton to summary abstraction: w classifies object
// labels, and every explicit property, both defaults, both internals, and
// the scope chain (element-wise) are rewritten through it. The modified
// bit is an identity under summarization. Afterward properties is always
// writable.
func (o *Object) Summarize(w objectlabel.Witness) {
	o.makeWritable()
	for k, v := range o.properties {
		o.properties[k] = v.Summarize(w)
	}
	o.defaultArray = o.defaultArray.Summarize(w)
	o.defaultNonArray = o.defaultNonArray.Summarize(w)
	o.internalPrototype = o.internalPrototype.Summarize(w)
	o.internalValue = o.internalValue.Summarize(w)
	o.scope = o.scope.Summarize(w)
}

// Trim reduces o in place to the portion not subsumed by ref's
// polymorphic/unknown facets. Every explicit property, both defaults, and
// both internals are trimmed slotwise against the matching slot of ref. If
// ref's scope is unknown, o's scope is coarsened to unknown too; scope-chain
// polymorphism is not refined any further (see spec.md §9's open question).
func (o *Object) Trim(ref *Object) {
	o.makeWritable()
	for k, v := range o.properties {
		o.properties[k] = v.Trim(ref.GetProperty(k))
	}
	o.defaultArray = o.defaultArray.Trim(ref.defaultArray)
	o.defaultNonArray = o.defaultNonArray.Trim(ref.defaultNonArray)
	o.internalPrototype = o.internalPrototype.Trim(ref.internalPrototype)
	o.internalValue = o.internalValue.Trim(ref.internalValue)
	if ref.scopeUnknown {
		o.scope = nil
		o.scopeUnknown = true
	}
}

// Remove assumes o subsumes ref and reduces o in place to the difference:
// every explicit property of o has ref's matching slot (consulting ref's
// defaults) subtracted, both defaults and internals are reduced slotwise,
// and the scope is reduced via Scope-Chain remove.
func (o *Object) Remove(ref *Object) {
	o.makeWritable()
	for k, v := range o.properties {
		o.properties[k] = v.Remove(ref.GetProperty(k))
	}
	o.defaultArray = o.defaultArray.Remove(ref.defaultArray)
	o.defaultNonArray = o.defaultNonArray.Remove(ref.defaultNonArray)
	o.internalPrototype = o.internalPrototype.Remove(ref.internalPrototype)
	o.internalValue = o.internalValue.Remove(ref.internalValue)
	o.scope = scopechain.Remove(o.scope, ref.scope)
}

// ReplaceNonModifiedParts is the demand-driven merge at the heart of the
// analyzer's per-edge differential propagation: every slot of o that is
// definitely not modified is replaced by other's corresponding slot (or
// dropped back to other's default, for explicit properties); every
// modified slot is kept as-is. See spec.md §4.6 for the six numbered
// steps this implements.
func (o *Object) ReplaceNonModifiedParts(other *Object) {
	o.makeWritable()

	// Step 1: replace or drop every not-definitely-modified explicit
	// property.
	for k, v := range o.properties {
		if v.IsMaybeModified() {
			continue
		}
		if ov, ok := other.properties[k]; ok {
			o.properties[k] = ov
		} else {
			delete(o.properties, k)
		}
	}

	// Step 2: pull in other's explicit properties that aren't in the
	// result yet, when the relevant default is not modified.
	arrayDefaultMod := o.defaultArray.IsMaybeModified()
	nonArrayDefaultMod := o.defaultNonArray.IsMaybeModified()
	if !arrayDefaultMod || !nonArrayDefaultMod {
		for k, ov := range other.properties {
			if _, exists := o.properties[k]; exists {
				continue
			}
			if IsArrayIndex(k) {
				if !arrayDefaultMod {
					o.properties[k] = ov
				}
			} else if !nonArrayDefaultMod {
				o.properties[k] = ov
			}
		}
	}

	// Step 3: replace each not-modified default.
	if !arrayDefaultMod {
		o.defaultArray = other.defaultArray
	}
	if !nonArrayDefaultMod {
		o.defaultNonArray = other.defaultNonArray
	}

	// Step 4: replace each not-modified internal slot.
	if !o.internalPrototype.IsMaybeModified() {
		o.internalPrototype = other.internalPrototype
	}
	if !o.internalValue.IsMaybeModified() {
		o.internalValue = other.internalValue
	}

	// Step 5: adopt other's known scope if this one is unknown.
	if o.scopeUnknown && !other.scopeUnknown {
		o.scope = other.scope
		o.scopeUnknown = false
	}
}

// ClearModified maps Value-level restrictToNotModified over every slot.
// Idempotent: calling it twice has the same effect as calling it once.
func (o *Object) ClearModified() {
	o.makeWritable()
	for k, v := range o.properties {
		o.properties[k] = v.RestrictToNotModified()
	}
	o.defaultArray = o.defaultArray.RestrictToNotModified()
	o.defaultNonArray = o.defaultNonArray.RestrictToNotModified()
	o.internalPrototype = o.internalPrototype.RestrictToNotModified()
	o.internalValue = o.internalValue.RestrictToNotModified()
}

// ReplaceObjectLabel renames every occurrence of old to replacement across
// every slot and the scope chain. scopeCache memoizes rewrites of shared
// scope prefixes; it may be nil. Modified flags are untouched.
func (o *Object) ReplaceObjectLabel(old, replacement objectlabel.Label, scopeCache map[*scopechain.Chain]*scopechain.Chain) {
	o.ReplaceObjectLabels(map[objectlabel.Label]objectlabel.Label{old: replacement}, scopeCache)
}

// ReplaceObjectLabels renames every label present as a key of mapping,
// across every slot and the scope chain.
func (o *Object) ReplaceObjectLabels(mapping map[objectlabel.Label]objectlabel.Label, scopeCache map[*scopechain.Chain]*scopechain.Chain) {
	o.makeWritable()
	for k, v := range o.properties {
		o.properties[k] = v.ReplaceObjectLabels(mapping)
	}
	o.defaultArray = o.defaultArray.ReplaceObjectLabels(mapping)
	o.defaultNonArray = o.defaultNonArray.ReplaceObjectLabels(mapping)
	o.internalPrototype = o.internalPrototype.ReplaceObjectLabels(mapping)
	o.internalValue = o.internalValue.ReplaceObjectLabels(mapping)
	o.scope = o.scope.ReplaceObjectLabels(mapping, scopeCache)
}

// GetAllObjectLabels returns every object label mentioned anywhere in o,
// including every scope-chain frame. Unknown Values contribute no labels.
func (o *Object) GetAllObjectLabels() objectlabel.Set {
	result := objectlabel.Empty
	for _, v := range o.properties {
		result = result.Union(v.GetObjectLabels())
	}
	result = result.Union(o.defaultArray.GetObjectLabels())
	result = result.Union(o.defaultNonArray.GetObjectLabels())
	result = result.Union(o.internalPrototype.GetObjectLabels())
	result = result.Union(o.internalValue.GetObjectLabels())
	o.scope.ForEach(func(frame objectlabel.Set) {
		result = result.Union(frame)
	})
	return result
}

// GetScopeChain returns the current scope, failing if the scope is
// unknown.
func (o *Object) GetScopeChain() (*scopechain.Chain, error) {
	if o.scopeUnknown {
		return nil, errors.New("getScopeChain", "scope is unknown, cannot be read directly")
	}
	return o.scope, nil
}

// SetScopeChain replaces the scope wholesale. Passing nil transitions to
// the Empty state; any other value transitions to Known.
func (o *Object) SetScopeChain(c *scopechain.Chain) {
	o.scope = c
	o.scopeUnknown = false
}

// SetScopeUnknown coarsens the scope to the Unknown state.
func (o *Object) SetScopeUnknown() {
	o.scope = nil
	o.scopeUnknown = true
}

// IsScopeUnknown reports whether the scope is in the Unknown state.
func (o *Object) IsScopeUnknown() bool { return o.scopeUnknown }

// AddToScopeChain joins c into the current scope and reports whether the
// stored chain changed. It fails if the scope is currently unknown.
func (o *Object) AddToScopeChain(c *scopechain.Chain) (bool, error) {
	if o.scopeUnknown {
		return false, errors.New("addToScopeChain", "scope is unknown, cannot be joined")
	}
	joined := scopechain.Add(o.scope, c)
	if joined == nil {
		return false, nil
	}
	o.scope = joined
	return true, nil
}
