package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentHTTP, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("visible", FieldDate, "2024-06-10")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at info level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry[FieldComponent] != ComponentHTTP || entry[FieldDate] != "2024-06-10" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Config{Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(FieldTable, "records").WithComponent(ComponentBackend).Info("loaded")

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=backend") {
		t.Fatalf("component should appear once: %q", out)
	}
	if !strings.Contains(out, "table=records") {
		t.Fatalf("attributes lost: %q", out)
	}
}

func TestNewFanoutToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "planner.log")
	logger, closeFn, err := New(Config{Format: "text", File: path, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.LogError(context.Background(), "write failed", errors.New("disk full"), OpUpdate)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(buf.String(), "disk full") {
		t.Fatalf("stdout handler missed the entry: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("file entry is not json: %v (%q)", err, data)
	}
	if entry[FieldError] != "disk full" || entry[FieldOperation] != OpUpdate {
		t.Fatalf("unexpected file entry %v", entry)
	}
}

func TestMiddlewareAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger, _, _ := New(Config{Format: "text", Output: &buf})

	h := Middleware(logger, func(context.Context) string { return "req-1" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("request id missing: %q", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Logger == nil {
		t.Fatal("FromContext should fall back to the default logger")
	}
}
