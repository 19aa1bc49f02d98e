package rebac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeIdentity(t *testing.T) {
	require.Equal(t, Entity("users", "alice"), Entity("users", "alice"))
	require.NotEqual(t, Entity("users", "alice"), Entity("users", "bob"))
	require.NotEqual(t, Entity("users", "alice"), PermissionSet("users", "alice", "read"))
	require.NotEqual(t,
		PermissionSet("files", "foo.pdf", "read"),
		PermissionSet("files", "foo.pdf", "write"),
	)

	// nodes are comparable map keys
	m := map[Node]struct{}{
		Entity("users", "alice"):                  {},
		PermissionSet("files", "foo.pdf", "read"): {},
	}
	_, ok := m[Entity("users", "alice")]
	require.True(t, ok)
}

func TestNodeString(t *testing.T) {
	require.Equal(t, "users:alice", Entity("users", "alice").String())
	require.Equal(t, "files:foo.pdf#read", PermissionSet("files", "foo.pdf", "read").String())
}

func TestWildcardSibling(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		sibling  Node
		wildcard bool
	}{
		{
			name:    "entity",
			node:    Entity("users", "alice"),
			sibling: Entity("users", "*"),
		},
		{
			name:    "permission_set",
			node:    PermissionSet("files", "foo.pdf", "read"),
			sibling: PermissionSet("files", "*", "read"),
		},
		{
			name:     "wildcard_is_its_own_sibling",
			node:     PermissionSet("files", "*", "read"),
			sibling:  PermissionSet("files", "*", "read"),
			wildcard: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.sibling, test.node.WildcardSibling())
			require.Equal(t, test.wildcard, test.node.IsWildcard())
			require.True(t, test.node.WildcardSibling().IsWildcard())
		})
	}
}

func TestEdgeString(t *testing.T) {
	e := Edge{
		Src: Entity("users", "alice"),
		Dst: PermissionSet("files", "foo.pdf", "read"),
	}
	require.Equal(t, "files:foo.pdf#read@users:alice", e.String())
}
