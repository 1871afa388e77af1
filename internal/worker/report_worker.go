package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planner/internal/amqp"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/progress"
)

type (
	// ReportSource computes the month report for a date; a zero date means
	// today.
	ReportSource interface {
		Report(ctx context.Context, date core.Date) (progress.Report, error)
	}

	ReportWriter interface {
		WriteReport(ctx context.Context, rep progress.Report) error
	}
)

// ReportWorker keeps the exported progress report in step with the journal.
type ReportWorker struct {
	source ReportSource
	writer ReportWriter
}

func NewReportWorker(source ReportSource, writer ReportWriter) *ReportWorker {
	return &ReportWorker{source: source, writer: writer}
}

// HandleEvent recomputes the report for the event's month and rewrites the
// report table. Errors are returned so the message is requeued.
func (w *ReportWorker) HandleEvent(ctx context.Context, e *amqp.Event) error {
	start := time.Now()
	rep, err := w.source.Report(ctx, e.Date)
	if err != nil {
		return fmt.Errorf("compute report: %w", err)
	}
	if err := w.writer.WriteReport(ctx, rep); err != nil {
		return fmt.Errorf("export report: %w", err)
	}

	slog.InfoContext(ctx, "Progress report exported",
		log.FieldEventID, e.ID,
		log.FieldEventType, e.Type,
		log.FieldYear, rep.Year,
		log.FieldMonth, rep.Month,
		log.FieldOverall, progress.FormatPercent(rep.Overall),
		"bonus", rep.Bonus.State(),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ExportToday writes today's report. The worker calls it on startup, so the
// table is current even if events were missed while it was down, and then
// periodically.
func (w *ReportWorker) ExportToday(ctx context.Context) error {
	rep, err := w.source.Report(ctx, core.Date{})
	if err != nil {
		return fmt.Errorf("compute today's report: %w", err)
	}
	if err := w.writer.WriteReport(ctx, rep); err != nil {
		return fmt.Errorf("export today's report: %w", err)
	}
	slog.InfoContext(ctx, "Current report exported",
		log.FieldYear, rep.Year,
		log.FieldMonth, rep.Month,
		"days_logged", rep.DaysLogged)
	return nil
}
