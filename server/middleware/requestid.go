// Package middleware holds the grpc unary interceptors the server installs
// on every rpc.
package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/rebacs/rebacs/pkg/id"
)

type requestIDCtxKey struct{}

const (
	requestIDTraceKey = "request_id"
	requestIDHeader   = "X-Request-Id"
)

// RequestIDFromContext returns the request id minted by the interceptor.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDCtxKey{}).(string)
	return requestID, ok
}

// NewRequestIDInterceptor creates an interceptor that tags every rpc with a
// ulid request id. It must come before the logging interceptor.
func NewRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID, err := id.NewString()
		if err != nil {
			return handler(ctx, req)
		}

		ctx = context.WithValue(ctx, requestIDCtxKey{}, requestID)

		trace.SpanFromContext(ctx).SetAttributes(attribute.String(requestIDTraceKey, requestID))

		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

		return handler(ctx, req)
	}
}
