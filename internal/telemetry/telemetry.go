// Package telemetry holds the two process-wide counters the abstract-object
// core exposes for test and regression purposes. The analyzer is
// single-threaded and cooperative (one worklist, one transfer at a time), so
// these counters need no atomics or locking; they are ordinary package
// state guarded by that single-threaded-solver invariant.
package telemetry

var (
	objectsCreated   int
	makeWritableCall int
)

// ObjectsCreated returns the number of Abstract Objects constructed since
// the last Reset.
func ObjectsCreated() int {
	return objectsCreated
}

// MakeWritableCalls returns the number of times makeWritable actually
// allocated a fresh properties mapping since the last Reset.
func MakeWritableCalls() int {
	return makeWritableCall
}

// RecordObjectCreated increments the construction counter by exactly one.
func RecordObjectCreated() {
	objectsCreated++
}

// RecordMakeWritable increments the makeWritable counter by exactly one.
func RecordMakeWritable() {
	makeWritableCall++
}

// Reset zeroes both counters. Tests call this between scenarios so counts
// are comparable across runs.
func Reset() {
	objectsCreated = 0
	makeWritableCall = 0
}
