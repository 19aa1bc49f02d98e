package commands

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/logger"
	"github.com/rebacs/rebacs/pkg/rebac"
	serverErrors "github.com/rebacs/rebacs/server/errors"
	"github.com/rebacs/rebacs/storage"
)

// An ExpandQuery lists the entities that hold a permission set, each with
// one membership path.
type ExpandQuery struct {
	logger logger.Logger
	tracer trace.Tracer
	store  storage.RelationStore
}

func NewExpandQuery(store storage.RelationStore, t trace.Tracer, l logger.Logger) *ExpandQuery {
	return &ExpandQuery{
		logger: l,
		tracer: t,
		store:  store,
	}
}

// Execute the query in req, returning the response or an error.
func (query *ExpandQuery) Execute(ctx context.Context, req *api.ExpandRequest) (*api.ExpandResponse, error) {
	dst, err := setToNode(req.Dst)
	if err != nil {
		return nil, err
	}

	witnesses, err := query.store.Expand(ctx, dst)
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	entities := make([]*api.ExpandedEntity, 0, len(witnesses))
	for _, w := range witnesses {
		entities = append(entities, witnessToExpandedEntity(w))
	}

	return &api.ExpandResponse{Entities: entities}, nil
}

func witnessToExpandedEntity(w rebac.Witness) *api.ExpandedEntity {
	path := make([]*api.PermissionSet, 0, len(w.Path))
	for _, n := range w.Path {
		path = append(path, &api.PermissionSet{Namespace: n.Namespace, ID: n.ID, Relation: n.Relation})
	}
	return &api.ExpandedEntity{
		Src:  &api.Entity{Namespace: w.Entity.Namespace, ID: w.Entity.ID},
		Path: path,
	}
}
