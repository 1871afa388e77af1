package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"planner/internal/amqp"
	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/journal"
	"planner/internal/log"
	"planner/internal/progress"
)

// EventPublisher sends journal events. *amqp.Client satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, e *amqp.Event) error
}

// JournalService runs every planner interaction against freshly loaded
// tables: each call opens its own Session, applies at most one mutation and
// rewrites the touched table.
type JournalService struct {
	records   journal.RecordRepository
	txs       journal.TransactionRepository
	cat       *catalog.Catalog
	weights   catalog.Weights
	publisher EventPublisher
	clock     func() time.Time
	closers   []func() error
}

type Option func(*JournalService)

// WithClock sets the source of "today". The date is taken in the clock's
// own location.
func WithClock(now func() time.Time) Option {
	return func(s *JournalService) { s.clock = now }
}

func WithWeights(w catalog.Weights) Option {
	return func(s *JournalService) { s.weights = w }
}

// WithPublisher enables journal events. A nil publisher disables them.
func WithPublisher(p EventPublisher) Option {
	return func(s *JournalService) { s.publisher = p }
}

// WithCloser registers a resource released by Close.
func WithCloser(fn func() error) Option {
	return func(s *JournalService) {
		if fn != nil {
			s.closers = append(s.closers, fn)
		}
	}
}

func NewJournalService(records journal.RecordRepository, txs journal.TransactionRepository, cat *catalog.Catalog, opts ...Option) *JournalService {
	s := &JournalService{
		records: records,
		txs:     txs,
		cat:     cat,
		weights: catalog.DefaultWeights(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JournalService) Catalog() *catalog.Catalog { return s.cat }

func (s *JournalService) Weights() catalog.Weights { return s.weights }

func (s *JournalService) today() core.Date {
	return core.DateOf(s.clock())
}

// Today returns today's record, creating it when missing.
func (s *JournalService) Today(ctx context.Context) (core.DailyRecord, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return core.DailyRecord{}, err
	}
	return sess.Records.Get(sess.Today)
}

// Record returns the record for date.
func (s *JournalService) Record(ctx context.Context, date core.Date) (core.DailyRecord, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return core.DailyRecord{}, err
	}
	return sess.Records.Get(date)
}

// Trailing returns the n most recent records, oldest first.
func (s *JournalService) Trailing(ctx context.Context, n int) ([]core.DailyRecord, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Records.Trailing(n), nil
}

// UpdateField sets one objective on an existing record and publishes
// record.updated, plus bonus.unlocked when the change lifts the month's
// score over the threshold.
func (s *JournalService) UpdateField(ctx context.Context, date core.Date, key string, v core.Value) (core.DailyRecord, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return core.DailyRecord{}, err
	}
	before := sess.Report(sess.Today)

	updated, err := sess.Records.UpdateField(ctx, date, key, v)
	if err != nil {
		return core.DailyRecord{}, err
	}
	slog.InfoContext(ctx, "Record field updated",
		log.FieldDate, date.String(),
		log.FieldObjective, key)

	ev := amqp.NewEvent(amqp.RecordUpdated, date)
	ev.Key = key
	s.publish(ctx, ev)

	after := sess.Report(sess.Today)
	if !before.Bonus.Unlocked && after.Bonus.Unlocked {
		slog.InfoContext(ctx, "Monthly bonus unlocked",
			log.FieldYear, after.Year,
			log.FieldMonth, after.Month,
			log.FieldOverall, after.Overall)
		bonus := amqp.NewEvent(amqp.BonusUnlocked, sess.Today)
		bonus.Overall = after.Overall
		s.publish(ctx, bonus)
	}
	return updated, nil
}

// AppendTransaction validates and stores tx, then publishes
// transaction.appended.
func (s *JournalService) AppendTransaction(ctx context.Context, tx core.Transaction) error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidDirection, tx.Type)
	}
	sess, err := s.Open(ctx)
	if err != nil {
		return err
	}
	if err := sess.Ledger.Append(ctx, tx); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewEvent(amqp.TransactionAppended, tx.Date))
	return nil
}

// MonthTransactions returns this month's transactions in insertion order.
func (s *JournalService) MonthTransactions(ctx context.Context) ([]core.Transaction, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Ledger.MonthSlice(sess.Today), nil
}

// Transactions returns the whole ledger, most recent first.
func (s *JournalService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Ledger.All(), nil
}

// Report scores the month containing date. A zero date means today.
func (s *JournalService) Report(ctx context.Context, date core.Date) (progress.Report, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return progress.Report{}, err
	}
	if date.IsZero() {
		date = sess.Today
	}
	return sess.Report(date), nil
}

func (s *JournalService) Finance(ctx context.Context) (core.FinanceSummary, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return core.FinanceSummary{}, err
	}
	return sess.Finance()
}

// Series returns this month's daily values of one objective.
func (s *JournalService) Series(ctx context.Context, key string) ([]progress.Point, error) {
	if _, ok := s.cat.Lookup(key); !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownObjective, key)
	}
	sess, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	return progress.DailySeries(sess.Month(sess.Today), s.cat, key)
}

// Ping checks that both tables can be read.
func (s *JournalService) Ping(ctx context.Context) error {
	if _, err := s.records.LoadRecords(ctx); err != nil {
		return err
	}
	_, err := s.txs.LoadTransactions(ctx)
	return err
}

func (s *JournalService) publish(ctx context.Context, e *amqp.Event) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publishing disabled, skipping", log.FieldEventType, e.Type)
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish journal event",
			log.FieldEventID, e.ID,
			log.FieldEventType, e.Type,
			"error", err)
	}
}

// Close releases the registered resources in reverse order of registration.
func (s *JournalService) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
