package backend

import (
	"context"
	"time"

	"filings/internal/sheets"
)

// Store is a source that also accepts replacement documents. Only the sqlite
// backend provides one.
type Store interface {
	sheets.Source
	sheets.RecordWriter
	sheets.TotalsWriter
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the source instance and optional cleanup function
type BackendResult struct {
	Source  sheets.Source
	Store   Store
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a source based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// File specific
	DataDirectory string
	RecordsFile   string
	TotalsFile    string

	// HTTP specific
	BaseURL      string
	FetchTimeout time.Duration

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleTotalsSheetName    string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// BackendType represents the type of backend
type BackendType string

const (
	FileBackend   BackendType = "file"
	HTTPBackend   BackendType = "http"
	SheetsBackend BackendType = "sheets"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, HTTPBackend, SheetsBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
