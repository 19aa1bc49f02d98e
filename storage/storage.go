// Package storage defines the contract a relation graph backend must satisfy.
package storage

import (
	"context"

	"github.com/rebacs/rebacs/pkg/rebac"
)

// RelationStore is the R/W interface for managing relation edges and
// answering reachability questions over them.
//
// Implementations must make Grant and Revoke idempotent: granting an edge
// that already exists and revoking an edge that never existed both succeed
// without changing state.
type RelationStore interface {
	// Grant records the edge src -> dst. dst must be a permission set.
	Grant(ctx context.Context, src, dst rebac.Node) error

	// Revoke removes the edge src -> dst if present.
	Revoke(ctx context.Context, src, dst rebac.Node) error

	// Exists reports whether the literal edge src -> dst is stored. No
	// wildcard generalization is applied.
	Exists(ctx context.Context, src, dst rebac.Node) (bool, error)

	// IsPermitted reports whether dst is reachable from src following
	// stored edges, with wildcard nodes standing in for any id.
	IsPermitted(ctx context.Context, src, dst rebac.Node) (bool, error)

	// Expand lists every entity that can reach dst, each with one shortest
	// membership path, ordered by the entity's canonical string form.
	Expand(ctx context.Context, dst rebac.Node) ([]rebac.Witness, error)

	// IsReady reports whether the backend can serve requests.
	IsReady(ctx context.Context) (bool, error)

	// Close releases any resources held by the backend. It must be safe to
	// call multiple times.
	Close(ctx context.Context) error
}
