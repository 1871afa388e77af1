package memory

import (
	"context"
	"sync"

	ports "planner/internal/sheets"
)

// Table keeps rows in process memory. ReplaceErr, when set, makes every
// ReplaceAll fail so callers can exercise write failures.
type Table struct {
	mu         sync.Mutex
	name       string
	rows       [][]string
	writes     int
	ReplaceErr error
}

var _ ports.Table = (*Table)(nil)

func New(name string, rows ...[]string) *Table {
	return &Table{name: name, rows: ports.CloneRows(rows)}
}

func (t *Table) Name() string { return "mem:" + t.name }

func (t *Table) ReadAll(_ context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ports.CloneRows(t.rows), nil
}

func (t *Table) ReplaceAll(_ context.Context, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ReplaceErr != nil {
		return t.ReplaceErr
	}
	t.rows = ports.CloneRows(rows)
	t.writes++
	return nil
}

// Writes reports how many successful ReplaceAll calls the table has seen.
func (t *Table) Writes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes
}
