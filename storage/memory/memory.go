package memory

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/rebacs/rebacs/internal/graph"
	rebacerrors "github.com/rebacs/rebacs/pkg/errors"
	"github.com/rebacs/rebacs/pkg/rebac"
	"github.com/rebacs/rebacs/storage"
)

// A RelationGraph provides an ephemeral memory-backed implementation of
// RelationStore. RelationGraph instances may be safely shared by multiple
// go-routines.
//
// Mutations take the write lock; Exists, IsPermitted, and Expand take the
// read lock for their whole run, so traversals always see a consistent
// snapshot and never observe a half-applied mutation.
type RelationGraph struct {
	tracer trace.Tracer
	mu     sync.RWMutex

	// Adjacency in both directions. A vertex is present as a key only
	// while at least one edge touches it.
	out map[rebac.Node]map[rebac.Node]struct{} /* GUARDED_BY(mu) */
	in  map[rebac.Node]map[rebac.Node]struct{} /* GUARDED_BY(mu) */

	// siblings indexes concrete vertices by their wildcard sibling, so a
	// traversal visiting a wildcard vertex can fan out to the edges of
	// every concrete sibling without scanning the graph. Entries follow
	// the same lifecycle as the adjacency rows.
	siblings map[rebac.Node]map[rebac.Node]struct{} /* GUARDED_BY(mu) */
}

var _ storage.RelationStore = (*RelationGraph)(nil)

func New(tracer trace.Tracer) *RelationGraph {
	return &RelationGraph{
		tracer:   tracer,
		out:      map[rebac.Node]map[rebac.Node]struct{}{},
		in:       map[rebac.Node]map[rebac.Node]struct{}{},
		siblings: map[rebac.Node]map[rebac.Node]struct{}{},
	}
}

// Grant records the edge src -> dst. Granting an existing edge is a no-op.
func (g *RelationGraph) Grant(ctx context.Context, src, dst rebac.Node) error {
	_, span := g.tracer.Start(ctx, "memory.Grant")
	defer span.End()

	if err := rebac.ValidateEdge(src, dst); err != nil {
		return rebacerrors.ErrorWithStack(err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.out[src] == nil {
		g.out[src] = map[rebac.Node]struct{}{}
	}
	g.out[src][dst] = struct{}{}

	if g.in[dst] == nil {
		g.in[dst] = map[rebac.Node]struct{}{}
	}
	g.in[dst][src] = struct{}{}

	g.indexSibling(src)
	g.indexSibling(dst)

	return nil
}

// Revoke removes the edge src -> dst. Revoking an absent edge is a no-op.
func (g *RelationGraph) Revoke(ctx context.Context, src, dst rebac.Node) error {
	_, span := g.tracer.Start(ctx, "memory.Revoke")
	defer span.End()

	if err := rebac.ValidateEdge(src, dst); err != nil {
		return rebacerrors.ErrorWithStack(err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if row, ok := g.out[src]; ok {
		delete(row, dst)
		if len(row) == 0 {
			delete(g.out, src)
		}
	}
	if row, ok := g.in[dst]; ok {
		delete(row, src)
		if len(row) == 0 {
			delete(g.in, dst)
		}
	}

	g.unindexSibling(src)
	g.unindexSibling(dst)

	return nil
}

// indexSibling records a concrete vertex under its wildcard sibling.
// Callers must hold the write lock.
func (g *RelationGraph) indexSibling(n rebac.Node) {
	if n.IsWildcard() {
		return
	}
	key := n.WildcardSibling()
	if g.siblings[key] == nil {
		g.siblings[key] = map[rebac.Node]struct{}{}
	}
	g.siblings[key][n] = struct{}{}
}

// unindexSibling drops a concrete vertex from the sibling index once no
// edge touches it. Callers must hold the write lock.
func (g *RelationGraph) unindexSibling(n rebac.Node) {
	if n.IsWildcard() {
		return
	}
	if len(g.out[n]) > 0 || len(g.in[n]) > 0 {
		return
	}
	key := n.WildcardSibling()
	if row, ok := g.siblings[key]; ok {
		delete(row, n)
		if len(row) == 0 {
			delete(g.siblings, key)
		}
	}
}

// Exists reports whether the literal edge src -> dst is stored. Wildcards
// are treated as ordinary ids here.
func (g *RelationGraph) Exists(ctx context.Context, src, dst rebac.Node) (bool, error) {
	_, span := g.tracer.Start(ctx, "memory.Exists")
	defer span.End()

	if err := rebac.ValidateEdge(src, dst); err != nil {
		return false, rebacerrors.ErrorWithStack(err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.out[src][dst]
	return ok, nil
}

// IsPermitted reports whether dst is reachable from src under wildcard
// matching.
func (g *RelationGraph) IsPermitted(ctx context.Context, src, dst rebac.Node) (bool, error) {
	ctx, span := g.tracer.Start(ctx, "memory.IsPermitted")
	defer span.End()

	if err := rebac.ValidateNode(src); err != nil {
		return false, rebacerrors.ErrorWithStack(err)
	}
	if err := rebac.ValidateDestination(dst); err != nil {
		return false, rebacerrors.ErrorWithStack(err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	return graph.Reachable(ctx, (*edgeView)(g), src, dst)
}

// Expand lists every entity that can reach dst, ordered by the entity's
// string form, each with one shortest path.
func (g *RelationGraph) Expand(ctx context.Context, dst rebac.Node) ([]rebac.Witness, error) {
	ctx, span := g.tracer.Start(ctx, "memory.Expand")
	defer span.End()

	if err := rebac.ValidateDestination(dst); err != nil {
		return nil, rebacerrors.ErrorWithStack(err)
	}

	g.mu.RLock()
	witnesses, err := graph.Expand(ctx, (*edgeView)(g), dst)
	g.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	sorted := storage.NewSortedWitnessSet()
	for _, w := range witnesses {
		sorted.Put(w)
	}
	return sorted.Values(), nil
}

func (g *RelationGraph) IsReady(ctx context.Context) (bool, error) {
	return true, nil
}

func (g *RelationGraph) Close(ctx context.Context) error {
	return nil
}

// edgeView adapts the locked adjacency maps to graph.EdgeReader. Callers
// must hold g.mu (read or write) for the lifetime of a traversal.
type edgeView RelationGraph

var _ graph.EdgeReader = (*edgeView)(nil)

func (v *edgeView) Successors(n rebac.Node) []rebac.Node {
	return collect(v.out[n])
}

func (v *edgeView) Predecessors(n rebac.Node) []rebac.Node {
	return collect(v.in[n])
}

func (v *edgeView) ConcreteSiblings(n rebac.Node) []rebac.Node {
	return collect(v.siblings[n.WildcardSibling()])
}

func collect(row map[rebac.Node]struct{}) []rebac.Node {
	if len(row) == 0 {
		return nil
	}
	nodes := make([]rebac.Node, 0, len(row))
	for n := range row {
		nodes = append(nodes, n)
	}
	return nodes
}
