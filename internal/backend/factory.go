package backend

import (
	"context"
	"fmt"

	applog "filings/internal/log"
	gsheet "filings/internal/sheets/google"
	"filings/internal/sheets/memory"
	"filings/internal/sheets/remote"
	"filings/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileBackend(config), nil
	case HTTPBackend:
		return f.createHTTPBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(config Config) *BackendResult {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	files := memory.NewFromFiles(dataDir)
	if config.RecordsFile != "" {
		files.RecordsName = config.RecordsFile
	}
	if config.TotalsFile != "" {
		files.TotalsName = config.TotalsFile
	}

	f.logger.Info("Initialized file backend",
		"data_directory", dataDir,
		"records_file", files.RecordsName,
		"totals_file", files.TotalsName)

	return &BackendResult{Source: files}
}

func (f *DefaultFactory) createHTTPBackend(config Config) (*BackendResult, error) {
	client, err := remote.New(config.BaseURL, "", "", config.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP source: %w", err)
	}

	f.logger.Info("Initialized HTTP backend", "base_url", config.BaseURL)

	return &BackendResult{Source: client}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Source:  repo,
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		RecordsSheet:    config.GoogleSheetName,
		TotalsSheet:     config.GoogleTotalsSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet", config.GoogleSheetName)

	return &BackendResult{Source: cli}, nil
}
