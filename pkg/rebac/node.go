// Package rebac contains the value types of the relation graph: graph
// vertices (entities and permission sets), edges between them, and the
// wildcard matching predicate used by every traversal.
package rebac

import "fmt"

// Wildcard is the reserved id selecting wildcard semantics. A node whose id
// is exactly this string stands for every id in its namespace.
const Wildcard = "*"

// Kind tags the two Node variants.
type Kind uint8

const (
	// KindEntity is a concrete actor/object, identified by (namespace, id).
	KindEntity Kind = iota + 1

	// KindPermissionSet is a named permission on an object, identified by
	// (namespace, id, relation).
	KindPermissionSet
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindPermissionSet:
		return "permission_set"
	default:
		return "unknown"
	}
}

// Node is a vertex of the relation graph. It is a tagged union over the two
// kinds; two nodes with identical fields denote the same vertex, so Node is
// comparable and usable as a map key. Relation is empty for entities.
type Node struct {
	Kind      Kind
	Namespace string
	ID        string
	Relation  string
}

// Entity returns the entity node for (namespace, id).
func Entity(namespace, id string) Node {
	return Node{Kind: KindEntity, Namespace: namespace, ID: id}
}

// PermissionSet returns the permission set node for (namespace, id, relation).
func PermissionSet(namespace, id, relation string) Node {
	return Node{Kind: KindPermissionSet, Namespace: namespace, ID: id, Relation: relation}
}

// IsWildcard reports whether the node is the wildcard vertex of its
// namespace (and relation, for permission sets).
func (n Node) IsWildcard() bool {
	return n.ID == Wildcard
}

// WildcardSibling returns the node with the same kind, namespace, and
// relation, with the id replaced by the wildcard. The sibling of a wildcard
// node is the node itself.
func (n Node) WildcardSibling() Node {
	n.ID = Wildcard
	return n
}

// String renders the node as "namespace:id" for entities and
// "namespace:id#relation" for permission sets.
func (n Node) String() string {
	if n.Kind == KindPermissionSet {
		return fmt.Sprintf("%s:%s#%s", n.Namespace, n.ID, n.Relation)
	}
	return fmt.Sprintf("%s:%s", n.Namespace, n.ID)
}

// Edge is a stored directed relation. Dst is always a permission set;
// permissions are only ever granted into a permission set.
type Edge struct {
	Src Node
	Dst Node
}

// String renders the edge as "dst@src", the notation used in grant logs.
func (e Edge) String() string {
	return fmt.Sprintf("%s@%s", e.Dst, e.Src)
}

// Witness is one expansion result: an entity from which the expanded
// permission set is reachable, together with the ordered permission set
// chain traversed from the entity to it. The chain always ends with the
// expanded set and has at least one element.
type Witness struct {
	Entity Node
	Path   []Node
}
