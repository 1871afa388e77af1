// Package http provides the JSON API over the journal service.
//
// This file holds the helpers that turn path values, query strings and
// JSON bodies into domain values.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"planner/internal/catalog"
	"planner/internal/core"
)

const maxBodyBytes = 64 << 10

// requestError is malformed client input, answered with 400.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// parsePathDate reads a YYYY-MM-DD path value.
func parsePathDate(r *http.Request, name string) (core.Date, error) {
	raw := r.PathValue(name)
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, badRequest("invalid date %q: want YYYY-MM-DD", raw)
	}
	return d, nil
}

// parseQueryDate reads an optional YYYY-MM-DD query parameter. Missing
// means the zero date.
func parseQueryDate(r *http.Request, name string) (core.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, badRequest("invalid %s %q: want YYYY-MM-DD", name, raw)
	}
	return d, nil
}

// parseDays reads the trailing window size, 1 to 366 days.
func parseDays(r *http.Request, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 366 {
		return 0, badRequest("invalid days %q: must be between 1 and 366", raw)
	}
	return n, nil
}

// decodeJSON reads a single JSON object into dst. Unknown fields and
// trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return badRequest("request body larger than %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return badRequest("request body is empty")
		default:
			return badRequest("malformed JSON: %v", err)
		}
	}
	if dec.More() {
		return badRequest("request body must contain a single JSON object")
	}
	return nil
}

// parseValue converts a decoded JSON value into the value kind o expects.
// Numeric and boolean objectives also accept their text form; anything else
// is passed on as-is so the catalog reports the mismatch.
func parseValue(o catalog.Objective, raw any) (core.Value, error) {
	if raw == nil {
		return core.Value{}, badRequest("value is required")
	}
	switch v := raw.(type) {
	case bool:
		return core.BoolValue(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return core.Value{}, badRequest("invalid number %q", v.String())
		}
		return core.NumberValue(f), nil
	case string:
		s := sanitizeInput(v)
		switch o.Kind.(type) {
		case catalog.Quantity:
			if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
				return core.NumberValue(f), nil
			}
		case catalog.Flag:
			if b, err := strconv.ParseBool(s); err == nil {
				return core.BoolValue(b), nil
			}
		}
		return core.ChoiceValue(s), nil
	default:
		return core.Value{}, badRequest("value must be a boolean, number or string")
	}
}

// parseAmount accepts an amount as a JSON number or a decimal string.
func parseAmount(raw any) (string, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.String(), nil
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("%w: amount is required", core.ErrInvalidAmount)
	default:
		return "", badRequest("amount must be a number or string")
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
