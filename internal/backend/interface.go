package backend

import (
	"context"

	"planner/internal/amqp"
	"planner/internal/services"
	"planner/internal/tabular"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult is a wired journal: the service, the report exporter and
// the event client when AMQP is enabled (nil otherwise).
type BackendResult struct {
	Service *services.JournalService
	Reports *tabular.ReportWriter
	Events  *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config.
	// opts are passed on to the journal service.
	CreateBackend(ctx context.Context, config Config, opts ...services.Option) (*BackendResult, error)
}

// BackendType represents where daily records and the ledger live
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	SheetsBackend BackendType = "sheets"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, SheetsBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// ReportTarget is where exported progress reports are written
type ReportTarget string

const (
	CSVReports    ReportTarget = "csv"
	SheetsReports ReportTarget = "sheets"
	SQLiteReports ReportTarget = "sqlite"
)

func (rt ReportTarget) IsValid() bool {
	switch rt {
	case CSVReports, SheetsReports, SQLiteReports:
		return true
	default:
		return false
	}
}
