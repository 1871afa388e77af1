package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"planner/internal/amqp"
	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/progress"
	"planner/internal/services"
	"planner/internal/sheets/memory"
	"planner/internal/tabular"
)

type stubSource struct {
	asked []core.Date
	err   error
}

func (s *stubSource) Report(_ context.Context, d core.Date) (progress.Report, error) {
	s.asked = append(s.asked, d)
	if s.err != nil {
		return progress.Report{}, s.err
	}
	return progress.Report{Year: d.Year(), Month: int(d.Month())}, nil
}

type stubWriter struct {
	reports []progress.Report
	err     error
}

func (w *stubWriter) WriteReport(_ context.Context, rep progress.Report) error {
	if w.err != nil {
		return w.err
	}
	w.reports = append(w.reports, rep)
	return nil
}

func TestHandleEvent(t *testing.T) {
	src := &stubSource{}
	wr := &stubWriter{}
	w := NewReportWorker(src, wr)

	e := amqp.NewEvent(amqp.RecordUpdated, core.NewDate(2024, 5, 3))
	if err := w.HandleEvent(context.Background(), e); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(src.asked) != 1 || !src.asked[0].Equal(e.Date) {
		t.Fatalf("report should be computed for the event date, got %v", src.asked)
	}
	if len(wr.reports) != 1 || wr.reports[0].Month != 5 {
		t.Fatalf("reports written %+v", wr.reports)
	}
}

func TestHandleEventErrors(t *testing.T) {
	e := amqp.NewEvent(amqp.TransactionAppended, core.NewDate(2024, 6, 1))

	w := NewReportWorker(&stubSource{err: errors.New("load")}, &stubWriter{})
	if err := w.HandleEvent(context.Background(), e); err == nil {
		t.Fatalf("expected source error")
	}

	w = NewReportWorker(&stubSource{}, &stubWriter{err: errors.New("quota")})
	if err := w.HandleEvent(context.Background(), e); err == nil {
		t.Fatalf("expected writer error")
	}
}

func TestExportTodayWithService(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()
	repo := tabular.NewRepository(memory.New("records"), memory.New("transactions"), cat)
	svc := services.NewJournalService(repo, repo, cat, services.WithClock(func() time.Time {
		return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	}))
	out := memory.New("progress")

	w := NewReportWorker(svc, tabular.NewReportWriter(out))
	if err := w.ExportToday(ctx); err != nil {
		t.Fatalf("startup export: %v", err)
	}
	rows, _ := out.ReadAll(ctx)
	if len(rows) == 0 || rows[0][0] != "key" {
		t.Fatalf("report table not written: %v", rows)
	}
	if out.Writes() != 1 {
		t.Fatalf("writes=%d", out.Writes())
	}
}
