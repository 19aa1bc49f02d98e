package commands

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/logger"
	serverErrors "github.com/rebacs/rebacs/server/errors"
	"github.com/rebacs/rebacs/storage"
)

// An ExistsQuery reports whether a literal edge is stored.
type ExistsQuery struct {
	logger logger.Logger
	tracer trace.Tracer
	store  storage.RelationStore
}

func NewExistsQuery(store storage.RelationStore, t trace.Tracer, l logger.Logger) *ExistsQuery {
	return &ExistsQuery{
		logger: l,
		tracer: t,
		store:  store,
	}
}

// Execute the query in req, returning the response or an error.
func (query *ExistsQuery) Execute(ctx context.Context, req *api.ExistsRequest) (*api.ExistsResponse, error) {
	src, err := subjectToNode(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := setToNode(req.Dst)
	if err != nil {
		return nil, err
	}

	exists, err := query.store.Exists(ctx, src, dst)
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	return &api.ExistsResponse{Exists: exists}, nil
}
