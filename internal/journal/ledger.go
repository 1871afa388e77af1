package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"planner/internal/core"
	"planner/internal/log"
)

// Ledger is the append-only list of transactions, kept in insertion order.
type Ledger struct {
	repo TransactionRepository
	txs  []core.Transaction
}

func NewLedger(repo TransactionRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Load replaces the in-memory ledger with the repository contents.
func (l *Ledger) Load(ctx context.Context) error {
	txs, err := l.repo.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	l.txs = append([]core.Transaction(nil), txs...)
	return nil
}

// Append validates and stores tx, then rewrites the whole ledger. Only the
// amount is validated.
func (l *Ledger) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	next := make([]core.Transaction, 0, len(l.txs)+1)
	next = append(next, l.txs...)
	next = append(next, tx)
	if err := l.repo.SaveTransactions(ctx, next); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	l.txs = next
	slog.InfoContext(ctx, "Transaction appended",
		log.FieldDate, tx.Date.String(),
		log.FieldTxType, string(tx.Type),
		"category", tx.Category,
		"amount", core.FormatAmount(tx.Amount))
	return nil
}

// MonthSlice returns transactions dated on or after the first of today's
// month, in insertion order. There is no upper bound: an entry dated after
// today's month still counts toward the current summary.
func (l *Ledger) MonthSlice(today core.Date) []core.Transaction {
	start := today.MonthStart()
	out := []core.Transaction{}
	for _, tx := range l.txs {
		if !tx.Date.Before(start) {
			out = append(out, tx)
		}
	}
	return out
}

// All returns every transaction for display: most recent date first, and
// among equal dates the latest appended first.
func (l *Ledger) All() []core.Transaction {
	out := make([]core.Transaction, len(l.txs))
	for i, tx := range l.txs {
		out[len(l.txs)-1-i] = tx
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (l *Ledger) Len() int {
	return len(l.txs)
}
