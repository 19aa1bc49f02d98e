package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// NewMetricsInterceptor creates an interceptor that counts rpcs and times
// their handling, labeled by method and status code. The collectors are
// registered on reg.
func NewMetricsInterceptor(reg prometheus.Registerer) grpc.UnaryServerInterceptor {
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rebacs",
		Name:      "grpc_requests_total",
		Help:      "Total number of rpcs handled, by method and status code.",
	}, []string{"method", "code"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rebacs",
		Name:      "grpc_request_duration_seconds",
		Help:      "Time spent handling rpcs, by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	reg.MustRegister(requestsTotal, requestDuration)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		requestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		requestDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

		return resp, err
	}
}
