package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"planner/internal/cli"
	apphttp "planner/internal/http"
	"planner/internal/log"
)

func main() {
	cfg, logger, closeLog := cli.Bootstrap("planner")
	defer closeLog()

	res := cli.InitBackend(context.Background(), logger, cfg)

	srv := apphttp.NewServer(":"+cfg.Port, res.Service, apphttp.Options{
		TrailingDays: cfg.TrailingDays,
		Logger:       logger,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.LogError(ctx, "Server shutdown error", err, log.OpShutdown)
		}
		if err := res.Cleanup(); err != nil {
			logger.LogError(ctx, "Backend cleanup error", err, log.OpShutdown)
		}
	})

	logger.Info("Starting planner server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"events", res.Events != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = res.Cleanup()
		cli.Fatal(logger.Logger, "Server error", err)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
