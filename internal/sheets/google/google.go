// Package google reads filings from a Google Sheets spreadsheet. The filings
// sheet carries the export column names in its first row. Contributor totals
// come from an optional second sheet, or are built from the filings when no
// totals sheet is configured.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"filings/internal/core"
	"filings/internal/rollup"
	"filings/internal/sheets"
)

// Config selects the spreadsheet and credentials.
type Config struct {
	SpreadsheetID   string
	RecordsSheet    string
	TotalsSheet     string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	recordsSheet  string
	totalsSheet   string
}

var _ sheets.Source = (*Client)(nil)

// New creates a read-only Sheets client using service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	recordsSheet := strings.TrimSpace(cfg.RecordsSheet)
	if recordsSheet == "" {
		recordsSheet = "Filings"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		recordsSheet:  recordsSheet,
		totalsSheet:   strings.TrimSpace(cfg.TotalsSheet),
	}, nil
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", cfg.CredentialsFile)
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func (c *Client) Name() string { return "sheets:" + c.spreadsheetID }

// ReadRecords reads the whole filings sheet.
func (c *Client) ReadRecords(ctx context.Context) ([]core.RawRow, error) {
	values, err := c.readSheet(ctx, c.recordsSheet)
	if err != nil {
		return nil, err
	}
	return parseRecords(values)
}

// ReadTotals reads the totals sheet, or builds the rollup from the filings
// sheet when none is configured.
func (c *Client) ReadTotals(ctx context.Context) (map[string]core.RawTotal, error) {
	if c.totalsSheet == "" {
		rows, err := c.ReadRecords(ctx)
		if err != nil {
			return nil, err
		}
		return rollup.Build(rows), nil
	}
	values, err := c.readSheet(ctx, c.totalsSheet)
	if err != nil {
		return nil, err
	}
	return parseTotals(values)
}

func (c *Client) readSheet(ctx context.Context, sheet string) ([][]interface{}, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	return resp.Values, nil
}
