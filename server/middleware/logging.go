package middleware

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/rebacs/rebacs/pkg/logger"
	serverErrors "github.com/rebacs/rebacs/server/errors"
)

const (
	grpcMethodKey      = "grpc_method"
	grpcCodeKey        = "grpc_code"
	requestIDKey       = "request_id"
	traceIDKey         = "trace_id"
	internalErrorKey   = "internal_error"
	grpcReqCompleteKey = "grpc_req_complete"
)

// NewLoggingInterceptor creates an interceptor that logs one line per rpc,
// with the internal cause attached when the public error hides it.
func NewLoggingInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		fields := []zap.Field{
			zap.String(grpcMethodKey, info.FullMethod),
		}

		spanCtx := trace.SpanContextFromContext(ctx)
		if spanCtx.HasTraceID() {
			fields = append(fields, zap.String(traceIDKey, spanCtx.TraceID().String()))
		}

		if requestID, ok := RequestIDFromContext(ctx); ok {
			fields = append(fields, zap.String(requestIDKey, requestID))
		}

		resp, err := handler(ctx, req)

		fields = append(fields, zap.String(grpcCodeKey, status.Code(err).String()))

		if err != nil {
			if internalError, ok := err.(serverErrors.InternalError); ok {
				fields = append(fields, zap.String(internalErrorKey, internalError.Internal().Error()))
				log.ErrorWithContext(ctx, err.Error(), fields...)
				return nil, err
			}

			fields = append(fields, zap.Error(err))
		}

		log.InfoWithContext(ctx, grpcReqCompleteKey, fields...)

		return resp, err
	}
}
