package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

var (
	validBackends      = []string{"csv", "sheets", "sqlite", "memory"}
	validReportTargets = []string{"csv", "sheets", "sqlite"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validLogFormats    = []string{"text", "json"}
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// CSV tables
	DataDir          string
	RecordsFile      string
	TransactionsFile string

	// Database
	SQLiteDBPath string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleRecordsSheet       string
	GoogleTransactionsSheet  string
	GoogleReportSheet        string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Report export
	ReportTarget string
	ReportFile   string

	TrailingDays int

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: strings.ToLower(getEnv("DATA_BACKEND", "csv")),

		DataDir:          getEnv("DATA_DIR", "./data"),
		RecordsFile:      getEnv("RECORDS_FILE", "planner_data.csv"),
		TransactionsFile: getEnv("TRANSACTIONS_FILE", "transactions.csv"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/planner.db"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleRecordsSheet:       getEnv("GOOGLE_RECORDS_SHEET", "Records"),
		GoogleTransactionsSheet:  getEnv("GOOGLE_TRANSACTIONS_SHEET", "Transactions"),
		GoogleReportSheet:        getEnv("GOOGLE_REPORT_SHEET", "Progress"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "planner"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "journal_events"),

		ReportTarget: strings.ToLower(getEnv("REPORT_TARGET", "csv")),
		ReportFile:   getEnv("REPORT_FILE", "progress_report.csv"),

		TrailingDays: getEnvInt("TRAILING_DAYS", 7),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:   getEnv("LOG_FILE", ""),
	}

	return cfg
}

// RecordsPath is the csv file holding daily records.
func (c *Config) RecordsPath() string { return c.dataPath(c.RecordsFile) }

// TransactionsPath is the csv file holding the ledger.
func (c *Config) TransactionsPath() string { return c.dataPath(c.TransactionsFile) }

// ReportPath is the csv file the report exporter rewrites.
func (c *Config) ReportPath() string { return c.dataPath(c.ReportFile) }

func (c *Config) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// AMQPEnabled reports whether journal events should be published.
func (c *Config) AMQPEnabled() bool { return c.AMQPURL != "" }

// NeedsSheets reports whether any component talks to Google Sheets.
func (c *Config) NeedsSheets() bool {
	return c.DataBackend == "sheets" || c.ReportTarget == "sheets"
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}
	if !slices.Contains(validReportTargets, c.ReportTarget) {
		errors = append(errors, fmt.Sprintf("invalid report target '%s': must be one of %v", c.ReportTarget, validReportTargets))
	}

	if c.DataBackend == "csv" || c.ReportTarget == "csv" {
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using csv tables")
		}
		if c.DataBackend == "csv" && (c.RecordsFile == "" || c.TransactionsFile == "") {
			errors = append(errors, "RECORDS_FILE and TRANSACTIONS_FILE are required for csv backend")
		}
		if c.ReportTarget == "csv" && c.ReportFile == "" {
			errors = append(errors, "REPORT_FILE is required for csv report target")
		}
	}

	// Validate SQLite configuration if backend or report target is sqlite
	if c.DataBackend == "sqlite" || c.ReportTarget == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.NeedsSheets() {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets")
		}
		if c.DataBackend == "sheets" && (c.GoogleRecordsSheet == "" || c.GoogleTransactionsSheet == "") {
			errors = append(errors, "GOOGLE_RECORDS_SHEET and GOOGLE_TRANSACTIONS_SHEET are required for sheets backend")
		}
		if c.ReportTarget == "sheets" && c.GoogleReportSheet == "" {
			errors = append(errors, "GOOGLE_REPORT_SHEET is required for sheets report target")
		}

		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.TrailingDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid trailing days %d: must be at least 1", c.TrailingDays))
	} else if c.TrailingDays > 366 {
		errors = append(errors, fmt.Sprintf("invalid trailing days %d: must be at most 366", c.TrailingDays))
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
