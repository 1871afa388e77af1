package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"planner/internal/cli"
	"planner/internal/log"
	"planner/internal/worker"
)

// refreshInterval re-exports today's report so the table follows the day
// rollover without any journal activity.
const refreshInterval = time.Hour

func main() {
	cfg, logger, closeLog := cli.Bootstrap("planner-worker")
	defer closeLog()

	logger = logger.WithComponent(log.ComponentWorker)
	logger.Info("Starting planner-worker",
		log.FieldBackend, cfg.DataBackend,
		"report_target", cfg.ReportTarget)

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	res := cli.InitBackend(context.Background(), logger, cfg)
	if res.Events == nil {
		logger.Error("AMQP broker unavailable, cannot consume journal events", "url_set", cfg.AMQPURL != "")
		_ = res.Cleanup()
		os.Exit(1)
	}

	reports := worker.NewReportWorker(res.Service, res.Reports)

	// The backend is released after the consumers return, not from the
	// signal handler, so a closing channel is never mistaken for a failure.
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// A failed startup export is not fatal; the next event rewrites the table.
	if err := reports.ExportToday(ctx); err != nil {
		logger.LogError(ctx, "Startup report export failed", err, log.OpExport)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return res.Events.Consume(gctx, reports.HandleEvent)
	})
	g.Go(func() error {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := reports.ExportToday(gctx); err != nil {
					logger.LogError(gctx, "Periodic report export failed", err, log.OpExport)
				}
			}
		}
	})

	err := g.Wait()
	if cerr := res.Cleanup(); cerr != nil {
		logger.LogError(context.Background(), "Backend cleanup error", cerr, log.OpShutdown)
	}
	if err != nil && ctx.Err() == nil {
		logger.LogError(context.Background(), "Worker stopped", err, log.OpShutdown)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
