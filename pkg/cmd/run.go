package cmd

import (
	"context"
	"log"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rebacs/rebacs/internal/build"
	"github.com/rebacs/rebacs/pkg/cmd/service"
	"github.com/rebacs/rebacs/pkg/cmd/util"
	"github.com/rebacs/rebacs/pkg/logger"
)

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the rebacs server",
		Long:  "run the rebacs server",
		Run:   run,
	}

	flags := cmd.Flags()
	flags.String("log-format", "text", "the log format to output logs in ('text' or 'json')")
	flags.String("log-level", "info", "the log level to use ('none', 'debug', 'info', 'warn', 'error')")
	flags.String("grpc-addr", "", "the host:port address to serve the grpc server on")

	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindPFlag("grpc.addr", flags.Lookup("grpc-addr"))

	return cmd
}

func run(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := service.GetServiceConfig()
	if err != nil {
		log.Fatalf("failed to load server config: %v", err)
	}

	logger, err := buildLogger(config.Log.Format, config.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	svc, err := service.BuildService(config, logger)
	if err != nil {
		logger.Fatal("failed to initialize rebacs server", zap.Error(err))
	}

	logger.Info(
		"🚀 starting rebacs service...",
		zap.String("version", build.Version),
		zap.String("date", build.Date),
		zap.String("commit", build.Commit),
		zap.String("go-version", runtime.Version()),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("failed to run rebacs server", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := svc.Close(shutdownCtx); err != nil {
		logger.Error("failed to gracefully shutdown the service", zap.Error(err))
	}

	logger.Info("Server exiting. Goodbye 👋")
}

func buildLogger(logFormat, logLevel string) (*logger.ZapLogger, error) {
	return logger.NewLogger(logFormat, logLevel)
}
