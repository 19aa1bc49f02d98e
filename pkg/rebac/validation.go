package rebac

import (
	"fmt"
	"regexp"
)

var (
	namespaceRegex = regexp.MustCompile(`^[^:#\s]+$`)
	idRegex        = regexp.MustCompile(`^[^:#\s]+$`)
	relationRegex  = regexp.MustCompile(`^[^:#@\s]+$`)
)

// InvalidNodeError is returned if a node does not satisfy the identity rules
// of the graph (empty or malformed namespace, id, or relation).
type InvalidNodeError struct {
	Node   Node
	Reason string
}

func (i *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid node '%s'. Reason: %s", i.Node, i.Reason)
}

func (i *InvalidNodeError) Is(target error) bool {
	_, ok := target.(*InvalidNodeError)
	return ok
}

// ValidateNode checks a node against the identity rules: the namespace, id,
// and (for permission sets) relation must be non-empty and free of ':', '#',
// and whitespace. The wildcard id '*' passes; a '*' embedded in a longer id
// is an ordinary character. Entities must not carry a relation.
func ValidateNode(n Node) error {
	switch n.Kind {
	case KindEntity:
		if n.Relation != "" {
			return &InvalidNodeError{Node: n, Reason: "entity must not have a relation"}
		}
	case KindPermissionSet:
		if !relationRegex.MatchString(n.Relation) {
			return &InvalidNodeError{Node: n, Reason: "missing or malformed relation"}
		}
	default:
		return &InvalidNodeError{Node: n, Reason: "unknown node kind"}
	}

	if !namespaceRegex.MatchString(n.Namespace) {
		return &InvalidNodeError{Node: n, Reason: "missing or malformed namespace"}
	}
	if !idRegex.MatchString(n.ID) {
		return &InvalidNodeError{Node: n, Reason: "missing or malformed id"}
	}
	return nil
}

// ValidateDestination checks that a traversal or edge destination is a well
// formed permission set.
func ValidateDestination(dst Node) error {
	if err := ValidateNode(dst); err != nil {
		return err
	}
	if dst.Kind != KindPermissionSet {
		return &InvalidNodeError{Node: dst, Reason: "destination must be a permission set"}
	}
	return nil
}

// ValidateEdge checks both endpoints of an edge.
func ValidateEdge(src, dst Node) error {
	if err := ValidateNode(src); err != nil {
		return err
	}
	return ValidateDestination(dst)
}
