package abstractobject

// IsArrayIndex is the externally provided, deterministic predicate (spec
// §6) that classifies a property name as an array-index name: the
// canonical decimal representation of an integer in [0, 2^32-2], the
// largest index JavaScript-family arrays admit. It is a package variable
// rather than an Object field so callers embedding this module in a larger
// analyzer can swap in the host language's own canonical-integer rule
// without changing every call site; the default below matches the
// spec.md glossary definition.
var IsArrayIndex = DefaultArrayIndexPredicate

// maxArrayIndex is 2^32 - 2, the largest valid array index.
const maxArrayIndex = 4294967294

// DefaultArrayIndexPredicate implements the canonical-decimal-integer rule:
// only digits, no leading zero unless the name is exactly "0", and the
// numeric value must fit in the array-index range.
func DefaultArrayIndexPredicate(name string) bool {
	if name == "" {
		return false
	}
	if name == "0" {
		return true
	}
	if name[0] < '1' || name[0] > '9' {
		return false
	}
	var value uint64
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			return false
		}
		value = value*10 + uint64(c-'0')
		if value > maxArrayIndex {
			return false
		}
	}
	return value <= maxArrayIndex
}
