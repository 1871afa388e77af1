// This file implements the Builder Pattern for JSON responses and the
// mapping from domain errors onto status codes.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"planner/internal/core"
	"planner/internal/log"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write encodes the body and sends the response. An unencodable body
// becomes a 500.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	var buf bytes.Buffer
	if b.body != nil {
		if err := json.NewEncoder(&buf).Encode(b.body); err != nil {
			http.Error(w, `{"error":"response encoding failed","status":500}`, http.StatusInternalServerError)
			return
		}
	}

	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(buf.Bytes())
}

type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// ErrorResponse creates a standard JSON error response.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Body(errorBody{Error: message, Status: statusCode})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// UnprocessableEntityError creates a 422 Unprocessable Entity error response.
func UnprocessableEntityError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// statusFor classifies err: malformed input 400, unknown resources 404,
// rejected values 422 and everything else, storage failures included, 500.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrUnknownObjective):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidDirection),
		errors.Is(err, core.ErrKindMismatch),
		errors.Is(err, core.ErrInvalidOption):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status for err. Internal errors are logged
// and their text is not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).LogError(r.Context(), "Request failed", err, operation,
			log.FieldPath, r.URL.Path)
		InternalServerError("internal error").Write(w)
		return
	}
	ErrorResponse(status, err.Error()).Write(w)
}
