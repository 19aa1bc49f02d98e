// Package server exposes the relation graph over gRPC, one rpc per
// command, plus an optional /metrics endpoint.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/logger"
	"github.com/rebacs/rebacs/pkg/telemetry"
	"github.com/rebacs/rebacs/server/commands"
	"github.com/rebacs/rebacs/storage"
)

// A Server implements the RelationService backend as a gRPC server.
type Server struct {
	tracer trace.Tracer
	logger logger.Logger
	store  storage.RelationStore
	config *Config
}

var _ api.RelationServiceServer = (*Server)(nil)

type Dependencies struct {
	Store  storage.RelationStore
	Tracer trace.Tracer
	Logger logger.Logger
}

type Config struct {
	GRPCServer        GRPCServerConfig
	Metrics           MetricsConfig
	UnaryInterceptors []grpc.UnaryServerInterceptor
}

type GRPCServerConfig struct {
	Addr      netip.AddrPort
	TLSConfig *TLSConfig
}

type MetricsConfig struct {
	Enabled  bool
	Addr     netip.AddrPort
	Registry *prometheus.Registry
}

type TLSConfig struct {
	CertPath string
	KeyPath  string
}

// New creates a new Server which uses the supplied store for managing
// relation edges.
func New(dependencies *Dependencies, config *Config) *Server {
	return &Server{
		tracer: dependencies.Tracer,
		logger: dependencies.Logger,
		store:  dependencies.Store,
		config: config,
	}
}

func subjectAttribute(s *api.Subject) attribute.KeyValue {
	value := ""
	switch {
	case s == nil:
	case s.Entity != nil:
		value = fmt.Sprintf("%s:%s", s.Entity.Namespace, s.Entity.ID)
	case s.Set != nil:
		value = fmt.Sprintf("%s:%s#%s", s.Set.Namespace, s.Set.ID, s.Set.Relation)
	}
	return attribute.String("src", value)
}

func setAttribute(key string, set *api.PermissionSet) attribute.KeyValue {
	value := ""
	if set != nil {
		value = fmt.Sprintf("%s:%s#%s", set.Namespace, set.ID, set.Relation)
	}
	return attribute.String(key, value)
}

func (s *Server) Grant(ctx context.Context, req *api.GrantRequest) (*api.GrantResponse, error) {
	ctx, span := s.tracer.Start(ctx, "grant", trace.WithAttributes(
		subjectAttribute(req.Src),
		setAttribute("dst", req.Dst),
	))
	defer span.End()

	cmd := commands.NewGrantCommand(s.store, s.tracer, s.logger)
	res, err := cmd.Execute(ctx, req)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}
	return res, nil
}

func (s *Server) Revoke(ctx context.Context, req *api.RevokeRequest) (*api.RevokeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "revoke", trace.WithAttributes(
		subjectAttribute(req.Src),
		setAttribute("dst", req.Dst),
	))
	defer span.End()

	cmd := commands.NewRevokeCommand(s.store, s.tracer, s.logger)
	res, err := cmd.Execute(ctx, req)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}
	return res, nil
}

func (s *Server) Exists(ctx context.Context, req *api.ExistsRequest) (*api.ExistsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "exists", trace.WithAttributes(
		subjectAttribute(req.Src),
		setAttribute("dst", req.Dst),
	))
	defer span.End()

	q := commands.NewExistsQuery(s.store, s.tracer, s.logger)
	res, err := q.Execute(ctx, req)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}
	return res, nil
}

func (s *Server) IsPermitted(ctx context.Context, req *api.IsPermittedRequest) (*api.IsPermittedResponse, error) {
	ctx, span := s.tracer.Start(ctx, "isPermitted", trace.WithAttributes(
		subjectAttribute(req.Src),
		setAttribute("dst", req.Dst),
	))
	defer span.End()

	q := commands.NewIsPermittedQuery(s.store, s.tracer, s.logger)
	res, err := q.Execute(ctx, req)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("permitted", res.Permitted))
	return res, nil
}

func (s *Server) Expand(ctx context.Context, req *api.ExpandRequest) (*api.ExpandResponse, error) {
	ctx, span := s.tracer.Start(ctx, "expand", trace.WithAttributes(
		setAttribute("dst", req.Dst),
	))
	defer span.End()

	q := commands.NewExpandQuery(s.store, s.tracer, s.logger)
	res, err := q.Execute(ctx, req)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}
	return res, nil
}

// IsReady reports whether this server instance is ready to accept traffic.
func (s *Server) IsReady(ctx context.Context) (bool, error) {
	return s.store.IsReady(ctx)
}

// Run starts server execution, and blocks until complete, returning any
// server errors. To close the server cancel the provided ctx.
func (s *Server) Run(ctx context.Context) error {
	opts := []grpc.ServerOption{
		grpc.ForceServerCodec(api.JSONCodec{}),
		grpc.ChainUnaryInterceptor(s.config.UnaryInterceptors...),
	}

	if s.config.GRPCServer.TLSConfig != nil {
		creds, err := credentials.NewServerTLSFromFile(s.config.GRPCServer.TLSConfig.CertPath, s.config.GRPCServer.TLSConfig.KeyPath)
		if err != nil {
			return err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)
	api.RegisterRelationServiceServer(grpcServer, s)
	reflection.Register(grpcServer)

	rpcAddr := s.config.GRPCServer.Addr
	lis, err := net.Listen("tcp", rpcAddr.String())
	if err != nil {
		return err
	}

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			s.logger.Error("failed to start grpc server", zap.Error(err))
		}
	}()

	s.logger.Info(fmt.Sprintf("grpc server listening on '%s'...", rpcAddr))

	var metricsServer *http.Server
	if s.config.Metrics.Enabled {
		registry := s.config.Metrics.Registry
		if registry == nil {
			registry = prometheus.NewRegistry()
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		metricsServer = &http.Server{
			Addr:    s.config.Metrics.Addr.String(),
			Handler: mux,
		}

		go func() {
			s.logger.Info(fmt.Sprintf("metrics server listening on '%s'...", metricsServer.Addr))

			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				s.logger.ErrorWithContext(ctx, "metrics server closed with unexpected error", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	s.logger.InfoWithContext(ctx, "Termination signal received! Gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			s.logger.ErrorWithContext(shutdownCtx, "metrics server shutdown failed", zap.Error(err))
			return err
		}
	}

	grpcServer.GracefulStop()

	return s.store.Close(shutdownCtx)
}
