package rebac

// Matches is the wildcard-aware identity predicate consulted at every
// traversal step in place of exact equality. Two nodes match iff they are of
// the same kind, in the same namespace, carry the same relation (permission
// sets only), and their ids are equal or at least one of them is the
// wildcard. The relation is never generalized: only the id field has
// wildcard semantics.
func Matches(a, b Node) bool {
	if a.Kind != b.Kind || a.Namespace != b.Namespace || a.Relation != b.Relation {
		return false
	}
	return a.ID == b.ID || a.ID == Wildcard || b.ID == Wildcard
}
