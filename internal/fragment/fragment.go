// Package fragment implements the simple Node+Context composite key (spec
// component C6) the enclosing solver uses to key per-program-point,
// per-context state. The flow graph's node type and the context
// abstraction are both external collaborators (see spec.md §1); Fragment
// only needs their identities to be comparable, so it keys on opaque
// string ids rather than importing a node or context type.
package fragment

import "fmt"

// Fragment pairs a flow-graph node id with a call-context id. It is a plain
// comparable struct so it can be used directly as a map key.
type Fragment struct {
	Node    string
	Context string
}

// New builds a Fragment for the given node and context ids.
func New(node, context string) Fragment {
	return Fragment{Node: node, Context: context}
}

// Less provides a deterministic total order for rendering and for
// iterating fragment-keyed maps in a fixed order.
func (f Fragment) Less(other Fragment) bool {
	if f.Node != other.Node {
		return f.Node < other.Node
	}
	return f.Context < other.Context
}

func (f Fragment) String() string {
	if f.Context == "" {
		return f.Node
	}
	return fmt.Sprintf("%s@%s", f.Node, f.Context)
}
