// Package csvfile stores a table as a CSV file on local disk.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"planner/internal/log"
	ports "planner/internal/sheets"
)

// Table is a CSV file. Writes go to a temporary file in the same directory
// which is then renamed over the target, so readers never see a partial file.
type Table struct {
	mu   sync.Mutex
	path string
}

var _ ports.Table = (*Table)(nil)

func New(path string) *Table {
	return &Table{path: path}
}

func (t *Table) Name() string { return t.path }

func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	// A malformed line is skipped; the rest of the table still loads.
	var (
		rows    [][]string
		skipped int
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			slog.WarnContext(ctx, "Skipping malformed CSV line",
				log.FieldTable, t.path,
				"line", parseErr.StartLine,
				"error", parseErr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", t.path, err)
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		slog.WarnContext(ctx, "Dropped malformed CSV lines", log.FieldTable, t.path, "count", skipped)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}
	return rows, nil
}

func (t *Table) ReplaceAll(ctx context.Context, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", t.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", t.path, err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", t.path, err)
	}
	return nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
