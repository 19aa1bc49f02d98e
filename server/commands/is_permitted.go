package commands

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/logger"
	serverErrors "github.com/rebacs/rebacs/server/errors"
	"github.com/rebacs/rebacs/storage"
)

// An IsPermittedQuery resolves wildcard-aware reachability between a
// subject and a permission set.
type IsPermittedQuery struct {
	logger logger.Logger
	tracer trace.Tracer
	store  storage.RelationStore
}

func NewIsPermittedQuery(store storage.RelationStore, t trace.Tracer, l logger.Logger) *IsPermittedQuery {
	return &IsPermittedQuery{
		logger: l,
		tracer: t,
		store:  store,
	}
}

// Execute the query in req, returning the response or an error.
func (query *IsPermittedQuery) Execute(ctx context.Context, req *api.IsPermittedRequest) (*api.IsPermittedResponse, error) {
	src, err := subjectToNode(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := setToNode(req.Dst)
	if err != nil {
		return nil, err
	}

	permitted, err := query.store.IsPermitted(ctx, src, dst)
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	return &api.IsPermittedResponse{Permitted: permitted}, nil
}
