// Package sheets defines the row-oriented table port shared by the CSV file,
// Google Sheets and in-memory backends.
package sheets

import "context"

// Ports for outbound adapters.
type (
	// Table is a whole-table store of string rows. The first row is the
	// header. ReadAll on a table that does not exist yet returns no rows and
	// no error.
	Table interface {
		ReadAll(ctx context.Context) ([][]string, error)
		ReplaceAll(ctx context.Context, rows [][]string) error
	}

	// Named is implemented by tables that can describe where they live, for
	// logging.
	Named interface {
		Name() string
	}
)

// NameOf returns a table's name, or "table" when it has none.
func NameOf(t Table) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return "table"
}

// CloneRows deep-copies a row matrix.
func CloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
