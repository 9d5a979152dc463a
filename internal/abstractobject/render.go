package abstractobject

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"abstractobject/internal/value"
)

// sortedKeys returns m's keys in natural string order, the deterministic
// order every rendering and diffing entry point in this package uses.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionSortedKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Diff writes a per-slot, sorted-by-name delta between old and o to out.
func (o *Object) Diff(old *Object, out io.Writer) {
	for _, k := range unionSortedKeys(o.properties, old.properties) {
		if d := o.GetProperty(k).Diff(old.GetProperty(k)); d != "" {
			fmt.Fprintf(out, "%s: %s\n", strconv.Quote(k), d)
		}
	}
	if d := o.defaultArray.Diff(old.defaultArray); d != "" {
		fmt.Fprintf(out, "[[DefaultArray]]: %s\n", d)
	}
	if d := o.defaultNonArray.Diff(old.defaultNonArray); d != "" {
		fmt.Fprintf(out, "[[DefaultNonArray]]: %s\n", d)
	}
	if d := o.internalPrototype.Diff(old.internalPrototype); d != "" {
		fmt.Fprintf(out, "[[Prototype]]: %s\n", d)
	}
	if d := o.internalValue.Diff(old.internalValue); d != "" {
		fmt.Fprintf(out, "[[Value]]: %s\n", d)
	}
	if o.scopeUnknown != old.scopeUnknown || !scopeEqual(o.scope, old.scope) {
		fmt.Fprintf(out, "[[Scope]]: %s -> %s\n", scopeString(old), scopeString(o))
	}
}

func scopeString(o *Object) string {
	if o.scopeUnknown {
		return "<unknown>"
	}
	if o.scope == nil {
		return "<empty>"
	}
	return o.scope.String()
}

// String renders o as a JSON-like structure with escaped keys, in sorted
// key order. It affects no semantic state and its output is deterministic.
func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	keys := sortedKeys(o.properties)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", strconv.Quote(k), o.properties[k])
	}
	if len(keys) > 0 {
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "[[DefaultArray]]: %s, ", o.defaultArray)
	fmt.Fprintf(&b, "[[DefaultNonArray]]: %s, ", o.defaultNonArray)
	fmt.Fprintf(&b, "[[Prototype]]: %s, ", o.internalPrototype)
	fmt.Fprintf(&b, "[[Value]]: %s, ", o.internalValue)
	fmt.Fprintf(&b, "[[Scope]]: %s", scopeString(o))
	b.WriteByte('}')
	return b.String()
}

// PrintModified writes only the slots whose Value is both modified and
// maybe-present-or-unknown, in sorted key order.
func (o *Object) PrintModified(out io.Writer) {
	for _, k := range sortedKeys(o.properties) {
		v := o.properties[k]
		if v.IsMaybeModified() && v.IsMaybePresentOrUnknown() {
			fmt.Fprintf(out, "%s: %s\n", strconv.Quote(k), v)
		}
	}
	printSlotIfModified(out, "[[DefaultArray]]", o.defaultArray)
	printSlotIfModified(out, "[[DefaultNonArray]]", o.defaultNonArray)
	printSlotIfModified(out, "[[Prototype]]", o.internalPrototype)
	printSlotIfModified(out, "[[Value]]", o.internalValue)
}

func printSlotIfModified(out io.Writer, label string, v value.Value) {
	if v.IsMaybeModified() && v.IsMaybePresentOrUnknown() {
		fmt.Fprintf(out, "%s: %s\n", label, v)
	}
}
