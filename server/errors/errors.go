// Package errors maps internal failures to the grpc status errors the
// service returns to callers.
package errors

import (
	"context"
	"fmt"

	"github.com/go-errors/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	rebacerrors "github.com/rebacs/rebacs/pkg/errors"
	"github.com/rebacs/rebacs/pkg/rebac"
)

const InternalServerErrorMsg = "Internal Server Error"

var (
	MissingSubject = status.Error(codes.InvalidArgument, "Invalid input. Make sure you provide exactly one of entity or set as the subject")

	MissingDestination = status.Error(codes.InvalidArgument, "Invalid input. Make sure you provide a destination permission set")

	RequestCancelled = status.Error(codes.Canceled, "Request Cancelled")
)

// InvalidNode reports a node that failed validation, with the reason.
func InvalidNode(node rebac.Node, reason string) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("Invalid node '%s'. Reason: %s", node, reason))
}

// InternalError keeps two views of one failure: the public error returned
// to the caller and the internal one carrying the real cause for logs.
type InternalError struct {
	public   error
	internal error
}

func (e InternalError) Error() string {
	return e.public.Error()
}

func (e InternalError) InternalError() string {
	return e.internal.Error()
}

func (e InternalError) Internal() error {
	return e.internal
}

// GRPCStatus lets the grpc layer surface the public status to the caller.
func (e InternalError) GRPCStatus() *status.Status {
	return status.Convert(e.public)
}

func NewInternalError(public string, internal error) InternalError {
	if public == "" {
		public = InternalServerErrorMsg
	}

	return InternalError{
		public:   status.Error(codes.Internal, public),
		internal: rebacerrors.ErrorWithStack(internal),
	}
}

// HandleError hides internal errors from callers. Use public to override
// the message returned to the caller.
func HandleError(public string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return RequestCancelled
	}

	var invalid *rebac.InvalidNodeError
	if errors.As(err, &invalid) {
		return InvalidNode(invalid.Node, invalid.Reason)
	}

	return NewInternalError(public, err)
}
