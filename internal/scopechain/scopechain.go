// Package scopechain implements the Scope Chain contract (spec component
// C3): an ordered sequence of object-label sets representing nested lexical
// environments. The shape is lifted directly from the teacher's
// SymbolTable parent-chain (internal/semantic/symbols.go in the source
// repository this module grew from): a frame plus a pointer to the
// enclosing frame, generalized from a name->symbol map to a label set.
package scopechain

import "abstractobject/internal/objectlabel"

// Chain is one frame of a lexical scope plus a link to the enclosing
// scope. A nil *Chain denotes the empty scope.
type Chain struct {
	frame  objectlabel.Set
	parent *Chain
}

// New builds a single-frame chain with no parent.
func New(frame objectlabel.Set) *Chain {
	return &Chain{frame: frame}
}

// Push returns a new chain with frame as its innermost scope and c as the
// enclosing scope.
func Push(frame objectlabel.Set, c *Chain) *Chain {
	return &Chain{frame: frame, parent: c}
}

// Frame returns this chain's innermost label set.
func (c *Chain) Frame() objectlabel.Set {
	if c == nil {
		return objectlabel.Empty
	}
	return c.frame
}

// Parent returns the enclosing scope, or nil if c is the outermost frame.
func (c *Chain) Parent() *Chain {
	if c == nil {
		return nil
	}
	return c.parent
}

// Len returns the number of frames in the chain.
func (c *Chain) Len() int {
	n := 0
	for f := c; f != nil; f = f.parent {
		n++
	}
	return n
}

// ForEach visits every frame's label set from innermost to outermost.
func (c *Chain) ForEach(f func(objectlabel.Set)) {
	for cur := c; cur != nil; cur = cur.parent {
		f(cur.frame)
	}
}

// Equal reports whether two chains have framewise-equal label sets. Two nil
// chains are equal; a nil and a non-nil chain are not.
func (c *Chain) Equal(other *Chain) bool {
	for {
		if c == nil || other == nil {
			return c == nil && other == nil
		}
		if !c.frame.Equal(other.frame) {
			return false
		}
		c, other = c.parent, other.parent
	}
}

// Hash returns a structural hash consistent with Equal.
func (c *Chain) Hash() uint64 {
	var h uint64 = 1099511628211
	for cur := c; cur != nil; cur = cur.parent {
		h ^= cur.frame.Hash()
		h *= 14695981039346656037
	}
	return h
}

// Summarize rewrites every frame's labels through w, returning a new chain.
// Frames that don't change are reused rather than reallocated.
func (c *Chain) Summarize(w objectlabel.Witness) *Chain {
	if c == nil {
		return nil
	}
	newFrame := c.frame.Summarize(w)
	newParent := c.parent.Summarize(w)
	if newFrame.Equal(c.frame) && newParent == c.parent {
		return c
	}
	return &Chain{frame: newFrame, parent: newParent}
}

// ReplaceObjectLabel renames a single label throughout the chain.
func (c *Chain) ReplaceObjectLabel(old, replacement objectlabel.Label) *Chain {
	return c.ReplaceObjectLabels(map[objectlabel.Label]objectlabel.Label{old: replacement}, nil)
}

// ReplaceObjectLabels renames every label present as a key of mapping
// throughout the chain. cache memoizes rewrites of shared parent chains so
// a prefix shared by many chains is only rewritten once; it may be nil.
func (c *Chain) ReplaceObjectLabels(mapping map[objectlabel.Label]objectlabel.Label, cache map[*Chain]*Chain) *Chain {
	if c == nil {
		return nil
	}
	if cache != nil {
		if rewritten, ok := cache[c]; ok {
			return rewritten
		}
	}
	newFrame := c.frame.ReplaceAll(mapping)
	newParent := c.parent.ReplaceObjectLabels(mapping, cache)
	var result *Chain
	if newFrame.Equal(c.frame) && newParent == c.parent {
		result = c
	} else {
		result = &Chain{frame: newFrame, parent: newParent}
	}
	if cache != nil {
		cache[c] = result
	}
	return result
}

// toSlice collects frames from innermost to outermost.
func (c *Chain) toSlice() []objectlabel.Set {
	var out []objectlabel.Set
	for cur := c; cur != nil; cur = cur.parent {
		out = append(out, cur.frame)
	}
	return out
}

// fromSlice rebuilds a chain from a innermost-to-outermost slice of frames.
func fromSlice(frames []objectlabel.Set) *Chain {
	var c *Chain
	for i := len(frames) - 1; i >= 0; i-- {
		c = Push(frames[i], c)
	}
	return c
}

// Add joins a and b framewise (union of each pair of corresponding label
// sets, innermost-aligned). Chains of different lengths are padded with
// empty frames on the shorter side so both contribute to every surviving
// frame. Add returns nil when the join result equals a, letting callers
// skip redundant updates to a stored chain.
func Add(a, b *Chain) *Chain {
	if b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	af, bf := a.toSlice(), b.toSlice()
	n := len(af)
	if len(bf) > n {
		n = len(bf)
	}
	out := make([]objectlabel.Set, n)
	changed := false
	for i := 0; i < n; i++ {
		var av, bv objectlabel.Set
		if i < len(af) {
			av = af[i]
		}
		if i < len(bf) {
			bv = bf[i]
		}
		out[i] = av.Union(bv)
		if !out[i].Equal(av) {
			changed = true
		}
	}
	if !changed && len(bf) <= len(af) {
		return nil
	}
	return fromSlice(out)
}

// Remove reduces a by removing every label also present in the
// corresponding frame of b (innermost-aligned). Frames beyond the shorter
// chain's length are left untouched.
func Remove(a, b *Chain) *Chain {
	if a == nil {
		return nil
	}
	af := a.toSlice()
	bf := b.toSlice()
	out := make([]objectlabel.Set, len(af))
	for i, frame := range af {
		if i < len(bf) {
			out[i] = frame.Difference(bf[i])
		} else {
			out[i] = frame
		}
	}
	return fromSlice(out)
}

func (c *Chain) String() string {
	if c == nil {
		return "<empty-scope>"
	}
	s := c.frame.String()
	if c.parent != nil {
		s += " -> " + c.parent.String()
	}
	return s
}
