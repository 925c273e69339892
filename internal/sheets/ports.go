// Package sheets defines where filing data comes from. Adapters live in the
// subpackages: memory (in-process and local files), remote (HTTP) and google
// (Google Sheets).
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"filings/internal/core"
)

// ErrNotFound is returned when a source document does not exist.
var ErrNotFound = errors.New("document not found")

// Ports for inbound data.
type (
	// RecordReader fetches the raw filings document.
	RecordReader interface {
		ReadRecords(ctx context.Context) ([]core.RawRow, error)
	}

	// TotalsReader fetches the contributor rollup document, keyed by
	// contributor key.
	TotalsReader interface {
		ReadTotals(ctx context.Context) (map[string]core.RawTotal, error)
	}

	// Source supplies both documents of a dataset.
	Source interface {
		RecordReader
		TotalsReader
		Name() string
	}

	// RecordWriter replaces the stored filings.
	RecordWriter interface {
		ReplaceRecords(ctx context.Context, rows []core.RawRow) error
	}

	// TotalsWriter replaces the stored contributor rollup.
	TotalsWriter interface {
		ReplaceTotals(ctx context.Context, totals map[string]core.RawTotal) error
	}
)

// DecodeRecords reads a JSON array of raw rows.
func DecodeRecords(r io.Reader) ([]core.RawRow, error) {
	var rows []core.RawRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return rows, nil
}

// DecodeTotals reads a JSON object of contributor totals.
func DecodeTotals(r io.Reader) (map[string]core.RawTotal, error) {
	var totals map[string]core.RawTotal
	if err := json.NewDecoder(r).Decode(&totals); err != nil {
		return nil, fmt.Errorf("decode contributor totals: %w", err)
	}
	if totals == nil {
		totals = map[string]core.RawTotal{}
	}
	return totals, nil
}
