// Package options carries the single process-wide configuration flag the
// abstract-object core consults: whether copy-on-write sharing of the
// properties mapping is disabled.
package options

// Options is a read-only configuration bag. Analyzer front ends construct
// one at startup and pass it down to every component that needs it; nothing
// in this module reads configuration from a package-level global.
type Options struct {
	// CopyOnWriteDisabled forces every copy of an Abstract Object to clone
	// its properties mapping eagerly instead of sharing it until first
	// write. Useful for debugging aliasing bugs; costs the COW speedup.
	CopyOnWriteDisabled bool
}

// Default returns the options the analyzer runs with unless overridden:
// copy-on-write enabled.
func Default() Options {
	return Options{CopyOnWriteDisabled: false}
}
