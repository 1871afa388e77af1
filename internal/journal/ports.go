package journal

import (
	"context"

	"planner/internal/core"
)

// Ports for the backing tables. Both are whole-table: Load returns everything
// and Save replaces everything. There is no locking; two writers race and the
// last full rewrite wins.
type (
	RecordRepository interface {
		LoadRecords(ctx context.Context) ([]core.DailyRecord, error)
		SaveRecords(ctx context.Context, records []core.DailyRecord) error
	}

	TransactionRepository interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, txs []core.Transaction) error
	}
)
