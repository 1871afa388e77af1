package journal

import (
	"context"
	"sync"

	"planner/internal/core"
)

type fakeRepository struct {
	mu      sync.Mutex
	records []core.DailyRecord
	txs     []core.Transaction

	// SaveErr, when set, is returned by every save.
	SaveErr error
}

var (
	_ RecordRepository      = (*fakeRepository)(nil)
	_ TransactionRepository = (*fakeRepository)(nil)
)

func (m *fakeRepository) LoadRecords(_ context.Context) ([]core.DailyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.records), nil
}

func (m *fakeRepository) SaveRecords(_ context.Context, records []core.DailyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = cloneAll(records)
	return nil
}

func (m *fakeRepository) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Transaction{}, m.txs...), nil
}

func (m *fakeRepository) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.txs = append([]core.Transaction{}, txs...)
	return nil
}
