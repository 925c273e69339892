// Package memory provides in-process and local-file data sources.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"filings/internal/core"
	"filings/internal/sheets"
)

// Default document names inside a data directory.
const (
	RecordsFile = "contributors.json"
	TotalsFile  = "contributor_totals.json"
)

// Store keeps both documents in memory. It also accepts writes, which makes
// it a stand-in for the SQLite store in tests.
type Store struct {
	mu     sync.Mutex
	rows   []core.RawRow
	totals map[string]core.RawTotal
}

var (
	_ sheets.Source       = (*Store)(nil)
	_ sheets.RecordWriter = (*Store)(nil)
	_ sheets.TotalsWriter = (*Store)(nil)
)

func New(rows []core.RawRow, totals map[string]core.RawTotal) *Store {
	s := &Store{}
	s.rows = cloneRows(rows)
	s.totals = maps.Clone(totals)
	if s.totals == nil {
		s.totals = map[string]core.RawTotal{}
	}
	return s
}

func (s *Store) Name() string { return "memory" }

// ReadRecords returns a copy of the stored rows.
func (s *Store) ReadRecords(_ context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.rows), nil
}

// ReadTotals returns a copy of the stored rollup.
func (s *Store) ReadTotals(_ context.Context) (map[string]core.RawTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.totals), nil
}

func (s *Store) ReplaceRecords(_ context.Context, rows []core.RawRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = cloneRows(rows)
	return nil
}

func (s *Store) ReplaceTotals(_ context.Context, totals map[string]core.RawTotal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = maps.Clone(totals)
	return nil
}

func cloneRows(rows []core.RawRow) []core.RawRow {
	out := slices.Clone(rows)
	for i := range out {
		out[i] = maps.Clone(out[i])
	}
	return out
}

// Files reads both documents from a local directory on every call.
type Files struct {
	Dir         string
	RecordsName string
	TotalsName  string
}

var _ sheets.Source = Files{}

// NewFromFiles returns a source reading dir with the default document names.
func NewFromFiles(dir string) Files {
	return Files{Dir: dir, RecordsName: RecordsFile, TotalsName: TotalsFile}
}

func (f Files) Name() string { return "file:" + f.Dir }

func (f Files) ReadRecords(ctx context.Context) ([]core.RawRow, error) {
	file, err := f.open(ctx, f.RecordsName, RecordsFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return sheets.DecodeRecords(file)
}

func (f Files) ReadTotals(ctx context.Context) (map[string]core.RawTotal, error) {
	file, err := f.open(ctx, f.TotalsName, TotalsFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return sheets.DecodeTotals(file)
}

func (f Files) open(ctx context.Context, name, fallback string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		name = fallback
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.Dir, name)
	}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, sheets.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, nil
}
