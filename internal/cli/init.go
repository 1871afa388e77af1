// Package cli provides common process bootstrap shared by cmd/planner,
// cmd/planner-worker and cmd/planner-report.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"planner/internal/backend"
	"planner/internal/config"
	"planner/internal/log"
	"planner/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from cfg, writing to out, and sets
// it as the default. The returned func releases the log file.
func SetupLogger(cfg *config.Config, component string, out io.Writer) (*log.Logger, func() error) {
	logger, closeFn, err := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		File:      cfg.LogFile,
		Component: component,
		Output:    out,
	})
	if err != nil {
		// fall back to out only
		fmt.Fprintf(os.Stderr, "logger setup failed, log file disabled: %v\n", err)
		logger, closeFn, _ = log.New(log.Config{
			Level:     log.ParseLevel(cfg.LogLevel),
			Format:    cfg.LogFormat,
			Component: component,
			Output:    out,
		})
	}
	log.SetDefault(logger)
	return logger, closeFn
}

// Bootstrap loads .env and the configuration, validates it and sets up
// logging to stdout. Validation failures exit the process.
func Bootstrap(component string) (*config.Config, *log.Logger, func() error) {
	return BootstrapTo(component, os.Stdout)
}

// BootstrapTo is Bootstrap with logs written to out.
func BootstrapTo(component string, out io.Writer) (*config.Config, *log.Logger, func() error) {
	LoadEnvFile()
	cfg := config.Load()
	logger, closeFn := SetupLogger(cfg, component, out)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		_ = closeFn()
		os.Exit(1)
	}
	return cfg, logger, closeFn
}

// InitBackend creates the configured journal backend or exits the process.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config, opts ...services.Option) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger, nil).CreateBackend(ctx, bcfg, opts...)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return res
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// The returned context is cancelled on SIGINT or SIGTERM after cleanup has
// run; done is closed once shutdown finished or timeout elapsed.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup(shutdownCtx)
			}
			close(finished)
		}()
		cancel()

		select {
		case <-finished:
			logger.Info("Shutdown complete")
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until shutdown has completed.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}

// Fatal logs err and exits with status 1.
func Fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}
