package commands

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/logger"
	"github.com/rebacs/rebacs/pkg/rebac"
	serverErrors "github.com/rebacs/rebacs/server/errors"
	"github.com/rebacs/rebacs/storage"
)

// A RevokeCommand removes a relation edge.
type RevokeCommand struct {
	logger logger.Logger
	tracer trace.Tracer
	store  storage.RelationStore
}

func NewRevokeCommand(store storage.RelationStore, t trace.Tracer, l logger.Logger) *RevokeCommand {
	return &RevokeCommand{
		logger: l,
		tracer: t,
		store:  store,
	}
}

// Execute the revoke in req, returning the response or an error.
func (cmd *RevokeCommand) Execute(ctx context.Context, req *api.RevokeRequest) (*api.RevokeResponse, error) {
	src, err := subjectToNode(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := setToNode(req.Dst)
	if err != nil {
		return nil, err
	}

	if err := cmd.store.Revoke(ctx, src, dst); err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	cmd.logger.InfoWithContext(ctx, "removed relation",
		zap.Stringer("edge", rebac.Edge{Src: src, Dst: dst}),
	)

	return &api.RevokeResponse{}, nil
}
