package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/journal"
	"planner/internal/progress"
)

// Session is the state of one interaction: both tables freshly loaded and
// today's record present. It is not shared between interactions.
type Session struct {
	Today   core.Date
	Records *journal.RecordStore
	Ledger  *journal.Ledger

	cat     *catalog.Catalog
	weights catalog.Weights
}

// Open reloads both tables concurrently and ensures today's record exists.
func (s *JournalService) Open(ctx context.Context) (*Session, error) {
	today := s.today()
	sess := &Session{
		Today:   today,
		Records: journal.NewRecordStore(s.records, s.cat),
		Ledger:  journal.NewLedger(s.txs),
		cat:     s.cat,
		weights: s.weights,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sess.Records.Load(gctx) })
	g.Go(func() error { return sess.Ledger.Load(gctx) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	if _, err := sess.Records.EnsureToday(ctx, today); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}

// Month returns the records of date's calendar month, ascending. Unlike the
// open-ended current-month slice it stops at the next month, so a report for
// a past month never sees later rows.
func (sess *Session) Month(date core.Date) []core.DailyRecord {
	next := date.NextMonthStart()
	all := sess.Records.MonthSlice(date)
	out := all[:0]
	for _, r := range all {
		if r.Date.Before(next) {
			out = append(out, r)
		}
	}
	return out
}

// Report scores the month containing date, with date as the snapshot
// reference.
func (sess *Session) Report(date core.Date) progress.Report {
	return progress.Compute(sess.Month(date), sess.cat, sess.weights, date)
}

// Finance summarizes today's month of transactions.
func (sess *Session) Finance() (core.FinanceSummary, error) {
	rec, err := sess.Records.Get(sess.Today)
	if err != nil {
		return core.FinanceSummary{}, err
	}
	return progress.Summarize(sess.Today, progress.StartingBalanceOf(rec), sess.Ledger.MonthSlice(sess.Today)), nil
}
