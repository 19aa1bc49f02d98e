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

// A GrantCommand records a relation edge.
type GrantCommand struct {
	logger logger.Logger
	tracer trace.Tracer
	store  storage.RelationStore
}

func NewGrantCommand(store storage.RelationStore, t trace.Tracer, l logger.Logger) *GrantCommand {
	return &GrantCommand{
		logger: l,
		tracer: t,
		store:  store,
	}
}

// Execute the grant in req, returning the response or an error.
func (cmd *GrantCommand) Execute(ctx context.Context, req *api.GrantRequest) (*api.GrantResponse, error) {
	src, err := subjectToNode(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := setToNode(req.Dst)
	if err != nil {
		return nil, err
	}

	if err := cmd.store.Grant(ctx, src, dst); err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	cmd.logger.InfoWithContext(ctx, "created relation",
		zap.Stringer("edge", rebac.Edge{Src: src, Dst: dst}),
	)

	return &api.GrantResponse{}, nil
}
