// Package service loads the server configuration and assembles the running
// service from it.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/rebacs/rebacs/pkg/logger"
	"github.com/rebacs/rebacs/pkg/telemetry"
	"github.com/rebacs/rebacs/server"
	"github.com/rebacs/rebacs/server/middleware"
	"github.com/rebacs/rebacs/storage"
	"github.com/rebacs/rebacs/storage/memory"
)

var ErrInvalidGRPCTLSConfig = errors.New("'grpc.tls.cert' and 'grpc.tls.key' configs must be set")

// GRPCConfig defines rebacs server configurations for grpc server specific
// settings.
type GRPCConfig struct {
	Addr string
	TLS  TLSConfig
}

// TLSConfig defines configuration specific to Transport Layer Security
// (TLS) settings.
type TLSConfig struct {
	Enabled  bool
	CertPath string `mapstructure:"cert"`
	KeyPath  string `mapstructure:"key"`
}

// LogConfig defines rebacs server configurations for log specific settings.
// For production we recommend using the 'json' log format.
type LogConfig struct {
	// Format is the log format to use in the log output (e.g. 'text' or 'json')
	Format string

	// Level is the minimum severity emitted (e.g. 'none', 'debug', 'info')
	Level string
}

// MetricsConfig defines rebacs server configurations for the prometheus
// /metrics endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// TraceConfig defines rebacs server configurations for OTLP span export.
type TraceConfig struct {
	Enabled      bool
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Trace   TraceConfig   `mapstructure:"trace"`
}

// DefaultConfig returns the rebacs server default configurations.
func DefaultConfig() Config {
	return Config{
		GRPC: GRPCConfig{
			Addr: "0.0.0.0:8081",
			TLS:  TLSConfig{Enabled: false},
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "0.0.0.0:2112",
		},
		Trace: TraceConfig{
			Enabled:     false,
			ServiceName: "rebacs",
			SampleRatio: 0.2,
		},
	}
}

// GetServiceConfig returns the rebacs server configuration based on the
// values provided in the server's 'config.yaml' file. The 'config.yaml'
// file is loaded from '/etc/rebacs', '$HOME/.rebacs', or the current
// working directory. If no configuration file is present, the default
// values are returned.
func GetServiceConfig() (Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths := []string{"/etc/rebacs", "$HOME/.rebacs", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	viper.SetEnvPrefix("REBACS")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// if the server config is not found then return the defaults
			return config, nil
		}

		return config, fmt.Errorf("failed to load server config: %w", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal server config: %w", err)
	}

	return config, nil
}

type service struct {
	server *server.Server
	store  storage.RelationStore
}

func (s *service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

func (s *service) Run(ctx context.Context) error {
	return s.server.Run(ctx)
}

func BuildService(config Config, logger logger.Logger) (*service, error) {
	var tracer trace.Tracer
	if config.Trace.Enabled {
		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(config.Trace.OTLPEndpoint),
			telemetry.WithServiceName(config.Trace.ServiceName),
			telemetry.WithSamplingRatio(config.Trace.SampleRatio),
		)
		tracer = tp.Tracer("rebacs")
		logger.Info(fmt.Sprintf("exporting traces to '%s'", config.Trace.OTLPEndpoint))
	} else {
		tracer = telemetry.NewNoopTracer()
	}

	store := memory.New(tracer)
	logger.Info("using 'memory' storage engine")

	grpcAddr, err := netip.ParseAddrPort(config.GRPC.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid grpc address '%s': %w", config.GRPC.Addr, err)
	}

	var grpcTLSConfig *server.TLSConfig
	if config.GRPC.TLS.Enabled {
		if config.GRPC.TLS.CertPath == "" || config.GRPC.TLS.KeyPath == "" {
			return nil, ErrInvalidGRPCTLSConfig
		}
		grpcTLSConfig = &server.TLSConfig{
			CertPath: config.GRPC.TLS.CertPath,
			KeyPath:  config.GRPC.TLS.KeyPath,
		}
		logger.Info("grpc TLS is enabled, serving connections using the provided certificate")
	} else {
		logger.Warn("grpc TLS is disabled, serving connections using insecure plaintext")
	}

	registry := prometheus.NewRegistry()

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.NewRequestIDInterceptor(),
		middleware.NewLoggingInterceptor(logger),
		middleware.NewMetricsInterceptor(registry),
	}

	metricsConfig := server.MetricsConfig{Enabled: config.Metrics.Enabled}
	if config.Metrics.Enabled {
		metricsAddr, err := netip.ParseAddrPort(config.Metrics.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid metrics address '%s': %w", config.Metrics.Addr, err)
		}
		metricsConfig.Addr = metricsAddr
		metricsConfig.Registry = registry
	}

	srv := server.New(&server.Dependencies{
		Store:  store,
		Tracer: tracer,
		Logger: logger,
	}, &server.Config{
		GRPCServer: server.GRPCServerConfig{
			Addr:      grpcAddr,
			TLSConfig: grpcTLSConfig,
		},
		Metrics:           metricsConfig,
		UnaryInterceptors: interceptors,
	})

	return &service{
		server: srv,
		store:  store,
	}, nil
}
