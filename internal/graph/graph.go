// Package graph implements wildcard-aware traversals over a relation graph.
// The algorithms are pure: they read edges through the EdgeReader interface
// and leave locking and storage to the caller.
package graph

import (
	"context"

	"github.com/rebacs/rebacs/pkg/rebac"
)

// EdgeReader exposes the adjacency of a relation graph. Implementations
// must return the neighbors stored for exactly the given node; wildcard
// generalization happens here, not in the reader.
type EdgeReader interface {
	// Successors returns the destinations of edges leaving n.
	Successors(n rebac.Node) []rebac.Node

	// Predecessors returns the sources of edges entering n.
	Predecessors(n rebac.Node) []rebac.Node

	// ConcreteSiblings returns the stored nodes that share n's kind,
	// namespace, and relation and carry a concrete (non-wildcard) id.
	ConcreteSiblings(n rebac.Node) []rebac.Node
}

// Reachable reports whether dst can be reached from src by following
// stored edges. A node is considered arrived when it matches dst under
// wildcard rules, and each traversal step follows the edges of every
// stored node matching the visited one: a concrete node shares edges with
// its wildcard sibling, a wildcard node with all its concrete siblings.
func Reachable(ctx context.Context, edges EdgeReader, src, dst rebac.Node) (bool, error) {
	visited := map[rebac.Node]struct{}{src: {}}
	frontier := []rebac.Node{src}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		n := frontier[0]
		frontier = frontier[1:]

		if rebac.Matches(n, dst) {
			return true, nil
		}

		for _, next := range successorsWithWildcard(edges, n) {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			frontier = append(frontier, next)
		}
	}

	return false, nil
}

// Expand lists every entity from which dst is reachable. Each entity is
// reported once, together with the permission sets on one shortest path
// from the entity to dst. The path always ends in dst, so an entity held
// directly by dst has the path [dst].
//
// Results are in discovery order; callers needing a stable order sort by
// entity.
func Expand(ctx context.Context, edges EdgeReader, dst rebac.Node) ([]rebac.Witness, error) {
	// parent maps each discovered node to the node it was discovered from,
	// one step closer to dst. First discovery wins, which keeps the
	// reconstructed paths shortest.
	parent := map[rebac.Node]rebac.Node{}
	visited := map[rebac.Node]struct{}{dst: {}}
	frontier := []rebac.Node{dst}

	var witnesses []rebac.Witness

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := frontier[0]
		frontier = frontier[1:]

		if n.Kind == rebac.KindEntity && n != dst {
			witnesses = append(witnesses, rebac.Witness{
				Entity: n,
				Path:   pathToTarget(parent, n),
			})
		}

		for _, prev := range predecessorsWithWildcard(edges, n) {
			if _, ok := visited[prev]; ok {
				continue
			}
			visited[prev] = struct{}{}
			parent[prev] = n
			frontier = append(frontier, prev)
		}
	}

	return witnesses, nil
}

// pathToTarget reconstructs the permission set chain from n (exclusive)
// to the expansion target (inclusive) by walking the parent pointers.
func pathToTarget(parent map[rebac.Node]rebac.Node, n rebac.Node) []rebac.Node {
	var path []rebac.Node
	for {
		next, ok := parent[n]
		if !ok {
			return path
		}
		path = append(path, next)
		n = next
	}
}

// successorsWithWildcard returns the destinations of every stored edge whose
// source matches n. A concrete node matches itself and its wildcard sibling;
// a wildcard node matches itself and every stored concrete sibling, so their
// outgoing edges count as its own.
func successorsWithWildcard(edges EdgeReader, n rebac.Node) []rebac.Node {
	out := edges.Successors(n)
	if n.IsWildcard() {
		for _, sibling := range edges.ConcreteSiblings(n) {
			out = append(out, edges.Successors(sibling)...)
		}
		return out
	}
	return append(out, edges.Successors(n.WildcardSibling())...)
}

// predecessorsWithWildcard mirrors successorsWithWildcard for edges entering
// a node matching n.
func predecessorsWithWildcard(edges EdgeReader, n rebac.Node) []rebac.Node {
	in := edges.Predecessors(n)
	if n.IsWildcard() {
		for _, sibling := range edges.ConcreteSiblings(n) {
			in = append(in, edges.Predecessors(sibling)...)
		}
		return in
	}
	return append(in, edges.Predecessors(n.WildcardSibling())...)
}
