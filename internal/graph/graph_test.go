package graph

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rebacs/rebacs/pkg/rebac"
	"github.com/rebacs/rebacs/pkg/testutils"
)

// fakeEdges is a map-backed EdgeReader for tests.
type fakeEdges struct {
	out      map[rebac.Node][]rebac.Node
	in       map[rebac.Node][]rebac.Node
	siblings map[rebac.Node][]rebac.Node
}

func newFakeEdges(edges ...rebac.Edge) *fakeEdges {
	f := &fakeEdges{
		out:      map[rebac.Node][]rebac.Node{},
		in:       map[rebac.Node][]rebac.Node{},
		siblings: map[rebac.Node][]rebac.Node{},
	}
	indexed := map[rebac.Node]struct{}{}
	for _, e := range edges {
		f.out[e.Src] = append(f.out[e.Src], e.Dst)
		f.in[e.Dst] = append(f.in[e.Dst], e.Src)

		for _, n := range []rebac.Node{e.Src, e.Dst} {
			if _, ok := indexed[n]; ok || n.IsWildcard() {
				continue
			}
			indexed[n] = struct{}{}
			key := n.WildcardSibling()
			f.siblings[key] = append(f.siblings[key], n)
		}
	}
	return f
}

func (f *fakeEdges) Successors(n rebac.Node) []rebac.Node   { return f.out[n] }
func (f *fakeEdges) Predecessors(n rebac.Node) []rebac.Node { return f.in[n] }

func (f *fakeEdges) ConcreteSiblings(n rebac.Node) []rebac.Node {
	return f.siblings[n.WildcardSibling()]
}

func TestReachable(t *testing.T) {
	var (
		alice      = rebac.Entity("user", "alice")
		bob        = rebac.Entity("user", "bob")
		anyone     = rebac.Entity("user", "*")
		staff      = rebac.PermissionSet("group", "staff", "member")
		docReader  = rebac.PermissionSet("doc", "readme", "reader")
		anyReader  = rebac.PermissionSet("doc", "*", "reader")
		noteReader = rebac.PermissionSet("doc", "notes", "reader")
		boxViewer  = rebac.PermissionSet("folder", "box", "viewer")
	)

	tests := []struct {
		name  string
		edges []rebac.Edge
		src   rebac.Node
		dst   rebac.Node
		want  bool
	}{
		{
			name:  "direct_edge",
			edges: []rebac.Edge{{Src: alice, Dst: docReader}},
			src:   alice,
			dst:   docReader,
			want:  true,
		},
		{
			name:  "no_edge",
			edges: []rebac.Edge{{Src: alice, Dst: docReader}},
			src:   bob,
			dst:   docReader,
			want:  false,
		},
		{
			name: "transitive_through_group",
			edges: []rebac.Edge{
				{Src: alice, Dst: staff},
				{Src: staff, Dst: docReader},
			},
			src:  alice,
			dst:  docReader,
			want: true,
		},
		{
			name:  "wildcard_source_entity",
			edges: []rebac.Edge{{Src: anyone, Dst: docReader}},
			src:   bob,
			dst:   docReader,
			want:  true,
		},
		{
			name:  "wildcard_destination_set",
			edges: []rebac.Edge{{Src: alice, Dst: anyReader}},
			src:   alice,
			dst:   docReader,
			want:  true,
		},
		{
			name: "wildcard_set_outgoing_edges_apply",
			edges: []rebac.Edge{
				{Src: alice, Dst: docReader},
				{Src: anyReader, Dst: noteReader},
			},
			src:  alice,
			dst:  noteReader,
			want: true,
		},
		{
			name: "wildcard_set_fans_out_to_concrete_siblings",
			edges: []rebac.Edge{
				{Src: alice, Dst: anyReader},
				{Src: docReader, Dst: boxViewer},
			},
			src:  alice,
			dst:  boxViewer,
			want: true,
		},
		{
			name: "fan_out_requires_matching_relation",
			edges: []rebac.Edge{
				{Src: alice, Dst: anyReader},
				{Src: rebac.PermissionSet("doc", "readme", "writer"), Dst: boxViewer},
			},
			src:  alice,
			dst:  boxViewer,
			want: false,
		},
		{
			name:  "wildcard_does_not_cross_namespaces",
			edges: []rebac.Edge{{Src: rebac.Entity("svc", "*"), Dst: docReader}},
			src:   bob,
			dst:   docReader,
			want:  false,
		},
		{
			name:  "wildcard_does_not_cross_relations",
			edges: []rebac.Edge{{Src: alice, Dst: rebac.PermissionSet("doc", "*", "writer")}},
			src:   alice,
			dst:   docReader,
			want:  false,
		},
		{
			name: "cycle_terminates",
			edges: []rebac.Edge{
				{Src: alice, Dst: staff},
				{Src: staff, Dst: noteReader},
				{Src: noteReader, Dst: staff},
			},
			src:  alice,
			dst:  docReader,
			want: false,
		},
		{
			name: "source_matching_target",
			src:  docReader,
			dst:  anyReader,
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Reachable(context.Background(), newFakeEdges(tc.edges...), tc.src, tc.dst)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReachableCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	alice := rebac.Entity("user", "alice")
	reader := rebac.PermissionSet("doc", "readme", "reader")

	_, err := Reachable(ctx, newFakeEdges(rebac.Edge{Src: alice, Dst: reader}), alice, reader)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExpand(t *testing.T) {
	var (
		alice     = rebac.Entity("user", "alice")
		bob       = rebac.Entity("user", "bob")
		staff     = rebac.PermissionSet("group", "staff", "member")
		docReader = rebac.PermissionSet("doc", "readme", "reader")
	)

	t.Run("direct_and_transitive", func(t *testing.T) {
		edges := newFakeEdges(
			rebac.Edge{Src: alice, Dst: docReader},
			rebac.Edge{Src: bob, Dst: staff},
			rebac.Edge{Src: staff, Dst: docReader},
		)

		witnesses, err := Expand(context.Background(), edges, docReader)
		require.NoError(t, err)

		expected := []rebac.Witness{
			{Entity: alice, Path: []rebac.Node{docReader}},
			{Entity: bob, Path: []rebac.Node{staff, docReader}},
		}
		if diff := cmp.Diff(expected, witnesses, testutils.WitnessCmpTransformer); diff != "" {
			t.Errorf("witness mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("entity_reported_once_with_shortest_path", func(t *testing.T) {
		edges := newFakeEdges(
			rebac.Edge{Src: alice, Dst: docReader},
			rebac.Edge{Src: alice, Dst: staff},
			rebac.Edge{Src: staff, Dst: docReader},
		)

		witnesses, err := Expand(context.Background(), edges, docReader)
		require.NoError(t, err)
		require.Len(t, witnesses, 1)
		require.Equal(t, alice, witnesses[0].Entity)
		require.Equal(t, []rebac.Node{docReader}, witnesses[0].Path)
	})

	t.Run("wildcard_set_members_included", func(t *testing.T) {
		anyReader := rebac.PermissionSet("doc", "*", "reader")
		edges := newFakeEdges(
			rebac.Edge{Src: bob, Dst: anyReader},
		)

		witnesses, err := Expand(context.Background(), edges, docReader)
		require.NoError(t, err)
		require.Len(t, witnesses, 1)
		require.Equal(t, bob, witnesses[0].Entity)
		require.Equal(t, []rebac.Node{docReader}, witnesses[0].Path)
	})

	t.Run("grants_on_concrete_siblings_of_wildcard_included", func(t *testing.T) {
		anyReader := rebac.PermissionSet("doc", "*", "reader")
		boxViewer := rebac.PermissionSet("folder", "box", "viewer")
		edges := newFakeEdges(
			rebac.Edge{Src: alice, Dst: docReader},
			rebac.Edge{Src: anyReader, Dst: boxViewer},
		)

		witnesses, err := Expand(context.Background(), edges, boxViewer)
		require.NoError(t, err)
		require.Len(t, witnesses, 1)
		require.Equal(t, alice, witnesses[0].Entity)
		require.Equal(t, []rebac.Node{anyReader, boxViewer}, witnesses[0].Path)
	})

	t.Run("cycle_terminates", func(t *testing.T) {
		other := rebac.PermissionSet("group", "other", "member")
		edges := newFakeEdges(
			rebac.Edge{Src: staff, Dst: other},
			rebac.Edge{Src: other, Dst: staff},
			rebac.Edge{Src: staff, Dst: docReader},
			rebac.Edge{Src: alice, Dst: other},
		)

		witnesses, err := Expand(context.Background(), edges, docReader)
		require.NoError(t, err)
		require.Len(t, witnesses, 1)
		require.Equal(t, alice, witnesses[0].Entity)
		require.Equal(t, []rebac.Node{other, staff, docReader}, witnesses[0].Path)
	})

	t.Run("empty_graph", func(t *testing.T) {
		witnesses, err := Expand(context.Background(), newFakeEdges(), docReader)
		require.NoError(t, err)
		require.Empty(t, witnesses)
	})

	t.Run("canceled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Expand(ctx, newFakeEdges(), docReader)
		require.ErrorIs(t, err, context.Canceled)
	})
}
