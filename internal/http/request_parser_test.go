package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planner/internal/catalog"
	"planner/internal/core"
)

func TestParseValue(t *testing.T) {
	cat := catalog.Default()
	lookup := func(key string) catalog.Objective {
		o, ok := cat.Lookup(key)
		if !ok {
			t.Fatalf("objective %s missing", key)
		}
		return o
	}

	tests := []struct {
		name string
		key  string
		raw  any
		want core.Value
	}{
		{"bool", catalog.ExerciseDone, true, core.BoolValue(true)},
		{"bool text", catalog.ExerciseDone, "false", core.BoolValue(false)},
		{"number", catalog.WaterLiters, json.Number("1.5"), core.NumberValue(1.5)},
		{"number text with comma", catalog.WaterLiters, " 2,5 ", core.NumberValue(2.5)},
		{"choice", catalog.FinanceApp, "Completed", core.ChoiceValue("Completed")},
		{"choice control chars", catalog.FinanceApp, "In\x00Progress", core.ChoiceValue("InProgress")},
		{"unparsable quantity text", catalog.WaterLiters, "lots", core.ChoiceValue("lots")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(lookup(tt.key), tt.raw)
			if err != nil {
				t.Fatalf("parseValue: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	for _, raw := range []any{nil, []any{1}, map[string]any{}} {
		if _, err := parseValue(lookup(catalog.ExerciseDone), raw); statusFor(err) != http.StatusBadRequest {
			t.Fatalf("%v: want a 400 error, got %v", raw, err)
		}
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 7, false},
		{"days=1", 1, false},
		{"days=366", 366, false},
		{"days=367", 0, true},
		{"days=-1", 0, true},
		{"days=x", 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/records?"+tt.query, nil)
		got, err := parseDays(r, 7)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("%q: got %d err=%v", tt.query, got, err)
		}
	}
}

func TestParseQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	d, err := parseQueryDate(r, "date")
	if err != nil || !d.IsZero() {
		t.Fatalf("missing date should be zero: %v %v", d, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/progress?date=2024-02-29", nil)
	d, err = parseQueryDate(r, "date")
	if err != nil || !d.Equal(core.NewDate(2024, 2, 29)) {
		t.Fatalf("got %v %v", d, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/progress?date=2023-02-29", nil)
	if _, err := parseQueryDate(r, "date"); err == nil {
		t.Fatal("impossible date should fail")
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"value": 1}`, ""},
		{"empty", ``, "empty"},
		{"trailing data", `{"value": 1}{"value": 2}`, "single JSON object"},
		{"unknown field", `{"other": 1}`, "malformed"},
		{"too large", `{"value": "` + strings.Repeat("a", maxBodyBytes) + `"}`, "larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))
			var dst updateFieldRequest
			err := decodeJSON(httptest.NewRecorder(), r, &dst)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("decodeJSON: %v", err)
				}
				if n, ok := dst.Value.(json.Number); !ok || n.String() != "1" {
					t.Fatalf("value=%#v, numbers should decode as json.Number", dst.Value)
				}
				return
			}
			var reqErr *requestError
			if !errors.As(err, &reqErr) || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err=%v, want request error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	if s, err := parseAmount(json.Number("12.5")); err != nil || s != "12.5" {
		t.Fatalf("number: %q %v", s, err)
	}
	if s, err := parseAmount("3,20"); err != nil || s != "3,20" {
		t.Fatalf("string: %q %v", s, err)
	}
	if _, err := parseAmount(nil); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("nil: %v", err)
	}
	if _, err := parseAmount(true); statusFor(err) != http.StatusBadRequest {
		t.Fatalf("bool: %v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  groceries  ", "groceries"},
		{"a\x00b\x07c", "abc"},
		{"line\tone", "line\tone"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Fatalf("sanitizeInput(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
