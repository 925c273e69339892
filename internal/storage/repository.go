package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"filings/internal/core"
	"filings/internal/sheets"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores imported filings and the contributor rollup.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

var (
	_ sheets.Source       = (*SQLiteRepository)(nil)
	_ sheets.RecordWriter = (*SQLiteRepository)(nil)
	_ sheets.TotalsWriter = (*SQLiteRepository)(nil)
)

// Import describes one completed import.
type Import struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"rowCount"`
	ImportedAt time.Time `json:"importedAt"`
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Name() string { return "sqlite:" + r.path }

// ReplaceRecords swaps the stored filings for rows in one transaction.
func (r *SQLiteRepository) ReplaceRecords(ctx context.Context, rows []core.RawRow) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM filings`); err != nil {
			return fmt.Errorf("clear filings: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO filings (row_index, fields) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for i, row := range rows {
			b, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("encode row %d: %w", i, err)
			}
			if _, err := stmt.ExecContext(ctx, i, string(b)); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
		slog.InfoContext(ctx, "Filings replaced in SQLite", "rows", len(rows))
		return nil
	})
}

// ReadRecords returns the stored filings in import order.
func (r *SQLiteRepository) ReadRecords(ctx context.Context) ([]core.RawRow, error) {
	rs, err := r.db.QueryContext(ctx, `SELECT fields FROM filings ORDER BY row_index`)
	if err != nil {
		return nil, fmt.Errorf("query filings: %w", err)
	}
	defer rs.Close()

	rows := []core.RawRow{}
	for rs.Next() {
		var fields string
		if err := rs.Scan(&fields); err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		var row core.RawRow
		if err := json.Unmarshal([]byte(fields), &row); err != nil {
			return nil, fmt.Errorf("decode filing: %w", err)
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate filings: %w", err)
	}
	return rows, nil
}

// ReplaceTotals swaps the stored rollup for totals in one transaction.
func (r *SQLiteRepository) ReplaceTotals(ctx context.Context, totals map[string]core.RawTotal) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM contributor_totals`); err != nil {
			return fmt.Errorf("clear contributor totals: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO contributor_totals (key, full_name, total_amount, contribution_count) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for key, t := range totals {
			if _, err := stmt.ExecContext(ctx, key, t.FullName, t.TotalAmount, t.ContributionCount); err != nil {
				return fmt.Errorf("insert total %q: %w", key, err)
			}
		}
		slog.InfoContext(ctx, "Contributor totals replaced in SQLite", "totals", len(totals))
		return nil
	})
}

// ReadTotals returns the stored rollup.
func (r *SQLiteRepository) ReadTotals(ctx context.Context) (map[string]core.RawTotal, error) {
	rs, err := r.db.QueryContext(ctx, `SELECT key, full_name, total_amount, contribution_count FROM contributor_totals`)
	if err != nil {
		return nil, fmt.Errorf("query contributor totals: %w", err)
	}
	defer rs.Close()

	out := map[string]core.RawTotal{}
	for rs.Next() {
		var key string
		var t core.RawTotal
		if err := rs.Scan(&key, &t.FullName, &t.TotalAmount, &t.ContributionCount); err != nil {
			return nil, fmt.Errorf("scan contributor total: %w", err)
		}
		out[key] = t
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributor totals: %w", err)
	}
	return out, nil
}

// RecordImport logs a completed import and returns its id.
func (r *SQLiteRepository) RecordImport(ctx context.Context, source string, rowCount int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO imports (source, row_count) VALUES (?, ?)`, source, rowCount)
	if err != nil {
		return 0, fmt.Errorf("record import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("import id: %w", err)
	}
	return id, nil
}

// LastImport returns the most recent import, or sheets.ErrNotFound.
func (r *SQLiteRepository) LastImport(ctx context.Context) (Import, error) {
	var imp Import
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, row_count, imported_at FROM imports ORDER BY id DESC LIMIT 1`).
		Scan(&imp.ID, &imp.Source, &imp.RowCount, &imp.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, sheets.ErrNotFound
	}
	if err != nil {
		return Import{}, fmt.Errorf("query last import: %w", err)
	}
	return imp, nil
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
