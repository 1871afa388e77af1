package backend

import (
	"fmt"

	"planner/internal/config"
)

// Config holds configuration for backend creation
type Config struct {
	Type         BackendType
	ReportTarget ReportTarget

	// CSV specific
	RecordsPath      string
	TransactionsPath string
	ReportPath       string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleRecordsSheet       string
	GoogleTransactionsSheet  string
	GoogleReportSheet        string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Type:         BackendType(appConfig.DataBackend),
		ReportTarget: ReportTarget(appConfig.ReportTarget),

		RecordsPath:      appConfig.RecordsPath(),
		TransactionsPath: appConfig.TransactionsPath(),
		ReportPath:       appConfig.ReportPath(),

		SQLiteDBPath: appConfig.SQLiteDBPath,

		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleRecordsSheet:       appConfig.GoogleRecordsSheet,
		GoogleTransactionsSheet:  appConfig.GoogleTransactionsSheet,
		GoogleReportSheet:        appConfig.GoogleReportSheet,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if !c.ReportTarget.IsValid() {
		return fmt.Errorf("invalid report target: %s", c.ReportTarget)
	}

	switch c.Type {
	case CSVBackend:
		if c.RecordsPath == "" || c.TransactionsPath == "" {
			return fmt.Errorf("records and transactions paths are required for csv backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleRecordsSheet == "" || c.GoogleTransactionsSheet == "" {
			return fmt.Errorf("records and transactions sheet names are required for sheets backend")
		}
	case MemoryBackend:
		// nothing to check
	}

	switch c.ReportTarget {
	case CSVReports:
		if c.ReportPath == "" {
			return fmt.Errorf("report path is required for csv report target")
		}
	case SQLiteReports:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite report target")
		}
	case SheetsReports:
		if c.GoogleSpreadsheetID == "" || c.GoogleReportSheet == "" {
			return fmt.Errorf("spreadsheet ID and report sheet are required for sheets report target")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{CSVBackend, SheetsBackend, SQLiteBackend, MemoryBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
