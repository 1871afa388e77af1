package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	ports "planner/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Options configures access to one spreadsheet.
type Options struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
}

// Client talks to one spreadsheet. Each sheet (tab) is exposed as a Table.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// New creates a Sheets client authenticated with a service account.
// ServiceAccountJSON wins over ServiceAccountFile; with neither set the
// standard GOOGLE_APPLICATION_CREDENTIALS file is tried.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	credentialsJSON, err := loadCredentials(ctx, opts)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func loadCredentials(ctx context.Context, opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.ServiceAccountJSON)
	file := strings.TrimSpace(opts.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(inline), nil
	case file != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Table returns the named sheet as a whole-table store.
func (c *Client) Table(sheet string) *Table {
	return &Table{client: c, sheet: strings.TrimSpace(sheet)}
}

// Table is one sheet of the spreadsheet. Reads cover every used cell;
// ReplaceAll writes the rows starting at A1, then clears whatever the
// previous table left outside them.
type Table struct {
	client *Client
	sheet  string
}

var _ ports.Table = (*Table)(nil)

func (t *Table) Name() string { return "sheets:" + t.sheet }

func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	if t.client == nil || t.client.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := quoteSheet(t.sheet)
	resp, err := t.client.svc.Spreadsheets.Values.Get(t.client.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return fromValues(resp.Values), nil
}

func (t *Table) ReplaceAll(ctx context.Context, rows [][]string) error {
	if t.client == nil || t.client.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := quoteSheet(t.sheet)
	values := t.client.svc.Spreadsheets.Values

	if len(rows) == 0 {
		if _, err := values.Clear(t.client.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear %s: %w", rng, err)
		}
		return nil
	}

	// Write first: a failed update leaves the previous table in place.
	vr := &gsheet.ValueRange{Values: toValues(rows)}
	_, err := values.Update(t.client.spreadsheetID, rng+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}

	stale := staleRanges(rng, rows)
	if _, err := values.BatchClear(t.client.spreadsheetID, &gsheet.BatchClearValuesRequest{Ranges: stale}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear stale cells of %s: %w", rng, err)
	}
	return nil
}

// maxColumn bounds the cleared area to the right of the written block.
const maxColumn = "ZZZ"

// staleRanges names the cells outside the freshly written block: every row
// below it and the columns to its right.
func staleRanges(rng string, rows [][]string) []string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		width = 1
	}
	return []string{
		fmt.Sprintf("%s!A%d:%s", rng, len(rows)+1, maxColumn),
		fmt.Sprintf("%s!%s1:%s%d", rng, columnName(width+1), maxColumn, len(rows)),
	}
}

// columnName converts a 1-based column index to its A1 letters.
func columnName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// quoteSheet wraps a sheet name for A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func fromValues(in [][]interface{}) [][]string {
	out := make([][]string, 0, len(in))
	for _, row := range in {
		out = append(out, toStrings(row))
	}
	return out
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
		}
		out[i] = row
	}
	return out
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case bool:
			if x {
				out[i] = "true"
			} else {
				out[i] = "false"
			}
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out
}
