package tabular

import (
	"context"
	"fmt"
	"log/slog"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/journal"
	"planner/internal/log"
	"planner/internal/sheets"
)

// Repository stores records and transactions in two tables. It satisfies
// both journal repository ports.
type Repository struct {
	records      sheets.Table
	transactions sheets.Table
	recordCodec  RecordCodec
	txCodec      TransactionCodec
}

var (
	_ journal.RecordRepository      = (*Repository)(nil)
	_ journal.TransactionRepository = (*Repository)(nil)
)

func NewRepository(records, transactions sheets.Table, cat *catalog.Catalog) *Repository {
	return &Repository{
		records:      records,
		transactions: transactions,
		recordCodec:  NewRecordCodec(cat),
	}
}

func (r *Repository) LoadRecords(ctx context.Context) ([]core.DailyRecord, error) {
	rows, err := r.records.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	records, dropped := r.recordCodec.Decode(rows)
	if dropped > 0 {
		slog.WarnContext(ctx, "Dropped unreadable record rows",
			log.FieldTable, sheets.NameOf(r.records),
			"dropped", dropped)
	}
	return records, nil
}

func (r *Repository) SaveRecords(ctx context.Context, records []core.DailyRecord) error {
	if err := r.records.ReplaceAll(ctx, r.recordCodec.Encode(records)); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func (r *Repository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.transactions.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	txs, dropped := r.txCodec.Decode(rows)
	if dropped > 0 {
		slog.WarnContext(ctx, "Dropped unreadable transaction rows",
			log.FieldTable, sheets.NameOf(r.transactions),
			"dropped", dropped)
	}
	return txs, nil
}

func (r *Repository) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	if err := r.transactions.ReplaceAll(ctx, r.txCodec.Encode(txs)); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}
