package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"planner/internal/amqp"
	"planner/internal/catalog"
	"planner/internal/journal"
	"planner/internal/log"
	"planner/internal/services"
	"planner/internal/sheets"
	"planner/internal/sheets/csvfile"
	gsheet "planner/internal/sheets/google"
	"planner/internal/sheets/memory"
	"planner/internal/storage"
	"planner/internal/tabular"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
}

// NewFactory creates a new backend factory. A nil catalog selects the
// default planner catalog.
func NewFactory(logger *slog.Logger, cat *catalog.Catalog) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &DefaultFactory{
		logger:  logger.With(log.FieldComponent, log.ComponentBackend),
		catalog: cat,
	}
}

// build accumulates the resources of one backend so a failure halfway
// releases what was already opened.
type build struct {
	ctx     context.Context
	config  Config
	cat     *catalog.Catalog
	logger  *slog.Logger
	sqlite  *storage.SQLiteRepository
	google  *gsheet.Client
	closers []func() error
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config, opts ...services.Option) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &build{ctx: ctx, config: config, cat: f.catalog, logger: f.logger}
	res, err := b.run(opts)
	if err != nil {
		if cerr := b.close(); cerr != nil {
			f.logger.Warn("Cleanup after failed backend creation", "error", cerr)
		}
		return nil, err
	}
	return res, nil
}

func (b *build) run(opts []services.Option) (*BackendResult, error) {
	records, txs, err := b.repositories()
	if err != nil {
		return nil, err
	}
	reportTable, err := b.reportTable()
	if err != nil {
		return nil, err
	}

	var events *amqp.Client
	if b.config.AMQPURL != "" {
		events, err = amqp.NewClient(b.config.AMQPURL, b.config.AMQPExchange, b.config.AMQPQueue)
		if err != nil {
			b.logger.Warn("Failed to initialize AMQP client, continuing without journal events", "error", err)
			events = nil
		} else {
			b.closers = append(b.closers, events.Close)
			b.logger.Info("Initialized AMQP client",
				"exchange", b.config.AMQPExchange,
				"queue", b.config.AMQPQueue)
		}
	}

	// only a non-nil client may become the publisher
	if events != nil {
		opts = append([]services.Option{services.WithPublisher(events)}, opts...)
	}
	opts = append(opts, services.WithCloser(b.close))
	svc := services.NewJournalService(records, txs, b.cat, opts...)

	b.logger.Info("Initialized journal backend",
		log.FieldBackend, b.config.Type.String(),
		"report_target", string(b.config.ReportTarget),
		"report_table", sheets.NameOf(reportTable),
		"amqp_enabled", events != nil)

	return &BackendResult{
		Service: svc,
		Reports: tabular.NewReportWriter(reportTable),
		Events:  events,
		Cleanup: svc.Close,
	}, nil
}

func (b *build) repositories() (journal.RecordRepository, journal.TransactionRepository, error) {
	switch b.config.Type {
	case CSVBackend:
		repo := tabular.NewRepository(
			csvfile.New(b.config.RecordsPath),
			csvfile.New(b.config.TransactionsPath),
			b.cat)
		b.logger.Info("Using csv tables",
			"records", b.config.RecordsPath,
			"transactions", b.config.TransactionsPath)
		return repo, repo, nil
	case SheetsBackend:
		cli, err := b.sheetsClient()
		if err != nil {
			return nil, nil, err
		}
		repo := tabular.NewRepository(
			cli.Table(b.config.GoogleRecordsSheet),
			cli.Table(b.config.GoogleTransactionsSheet),
			b.cat)
		return repo, repo, nil
	case SQLiteBackend:
		repo, err := b.sqliteRepo()
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	case MemoryBackend:
		repo := tabular.NewRepository(memory.New("records"), memory.New("transactions"), b.cat)
		b.logger.Info("Using in-memory tables, data is lost on exit")
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend type: %s", b.config.Type)
	}
}

func (b *build) reportTable() (sheets.Table, error) {
	switch b.config.ReportTarget {
	case CSVReports:
		return csvfile.New(b.config.ReportPath), nil
	case SheetsReports:
		cli, err := b.sheetsClient()
		if err != nil {
			return nil, err
		}
		return cli.Table(b.config.GoogleReportSheet), nil
	case SQLiteReports:
		repo, err := b.sqliteRepo()
		if err != nil {
			return nil, err
		}
		return repo.ReportTable(), nil
	default:
		return nil, fmt.Errorf("unsupported report target: %s", b.config.ReportTarget)
	}
}

// sqliteRepo opens the database once, shared by the journal and the report
// table.
func (b *build) sqliteRepo() (*storage.SQLiteRepository, error) {
	if b.sqlite != nil {
		return b.sqlite, nil
	}
	repo, err := storage.NewSQLiteRepository(b.config.SQLiteDBPath, b.cat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	b.sqlite = repo
	b.closers = append(b.closers, repo.Close)
	b.logger.Info("Initialized SQLite repository", "db_path", b.config.SQLiteDBPath)
	return repo, nil
}

func (b *build) sheetsClient() (*gsheet.Client, error) {
	if b.google != nil {
		return b.google, nil
	}
	cli, err := gsheet.New(b.ctx, gsheet.Options{
		SpreadsheetID:      b.config.GoogleSpreadsheetID,
		ServiceAccountJSON: b.config.GoogleServiceAccountJSON,
		ServiceAccountFile: b.config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	b.google = cli
	b.logger.Info("Initialized Google Sheets client")
	return cli, nil
}

// close releases resources in reverse order of acquisition. It runs once.
func (b *build) close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
