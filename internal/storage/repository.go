package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/journal"
	"planner/internal/log"
	"planner/internal/sheets"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps records, transactions and the last progress report
// in one sqlite file. Saves replace whole tables inside a single transaction.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	cat     *catalog.Catalog
}

var (
	_ journal.RecordRepository      = (*SQLiteRepository)(nil)
	_ journal.TransactionRepository = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string, cat *catalog.Catalog) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// single writer; concurrent loads queue on the pool
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		cat:     cat,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) LoadRecords(ctx context.Context) ([]core.DailyRecord, error) {
	dates, err := r.queries.ListRecordDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list record dates: %w", err)
	}
	values, err := r.queries.ListDailyValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list daily values: %w", err)
	}

	byDate := make(map[string]map[string]string, len(dates))
	for _, v := range values {
		m, ok := byDate[v.Date]
		if !ok {
			m = map[string]string{}
			byDate[v.Date] = m
		}
		m[v.Objective] = v.Value
	}

	out := make([]core.DailyRecord, 0, len(dates))
	for _, raw := range dates {
		date, err := core.ParseDate(raw)
		if err != nil {
			slog.WarnContext(ctx, "Skipping record with invalid date", log.FieldDate, raw, log.FieldError, err)
			continue
		}
		rec := core.NewDailyRecord(date)
		cells := byDate[raw]
		for _, o := range r.cat.Objectives() {
			s, ok := cells[o.Key]
			if !ok {
				rec.Values[o.Key] = o.Default()
				continue
			}
			rec.Values[o.Key] = o.Parse(s)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *SQLiteRepository) SaveRecords(ctx context.Context, records []core.DailyRecord) error {
	return r.inTx(ctx, func(q *Queries) error {
		if err := q.DeleteDailyValues(ctx); err != nil {
			return fmt.Errorf("clear daily values: %w", err)
		}
		if err := q.DeleteDailyRecords(ctx); err != nil {
			return fmt.Errorf("clear daily records: %w", err)
		}
		for _, rec := range records {
			date := rec.Date.String()
			if err := q.InsertDailyRecord(ctx, date); err != nil {
				return fmt.Errorf("insert record %s: %w", date, err)
			}
			for _, o := range r.cat.Objectives() {
				v, ok := rec.Values[o.Key]
				if !ok {
					v = o.Default()
				}
				if err := q.InsertDailyValue(ctx, DailyValue{Date: date, Objective: o.Key, Value: o.Format(v)}); err != nil {
					return fmt.Errorf("insert value %s/%s: %w", date, o.Key, err)
				}
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := toTransaction(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable transaction", "id", row.ID, "error", err)
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r *SQLiteRepository) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	return r.inTx(ctx, func(q *Queries) error {
		if err := q.DeleteTransactions(ctx); err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		for i, tx := range txs {
			row := TransactionRow{
				Date:        tx.Date.String(),
				Type:        string(tx.Type),
				Category:    tx.Category,
				Amount:      core.FormatAmount(tx.Amount),
				Description: tx.Description,
			}
			if err := q.InsertTransaction(ctx, row); err != nil {
				return fmt.Errorf("insert transaction %d: %w", i, err)
			}
		}
		return nil
	})
}

// ReportTable exposes the report_rows table as a sheets.Table.
func (r *SQLiteRepository) ReportTable() sheets.Table {
	return &reportTable{repo: r}
}

type reportTable struct {
	repo *SQLiteRepository
}

func (t *reportTable) Name() string { return "sqlite:report_rows" }

func (t *reportTable) ReadAll(ctx context.Context) ([][]string, error) {
	encoded, err := t.repo.queries.ListReportRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list report rows: %w", err)
	}
	out := make([][]string, 0, len(encoded))
	for _, e := range encoded {
		var cells []string
		if err := json.Unmarshal([]byte(e), &cells); err != nil {
			return nil, fmt.Errorf("decode report row: %w", err)
		}
		out = append(out, cells)
	}
	return out, nil
}

func (t *reportTable) ReplaceAll(ctx context.Context, rows [][]string) error {
	return t.repo.inTx(ctx, func(q *Queries) error {
		if err := q.DeleteReportRows(ctx); err != nil {
			return fmt.Errorf("clear report rows: %w", err)
		}
		for i, row := range rows {
			b, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("encode report row: %w", err)
			}
			if err := q.InsertReportRow(ctx, int64(i), string(b)); err != nil {
				return fmt.Errorf("insert report row %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func toTransaction(row TransactionRow) (core.Transaction, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	dir, err := core.ParseDirection(row.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Type:        dir,
		Category:    row.Category,
		Amount:      amount,
		Description: row.Description,
	}, nil
}
