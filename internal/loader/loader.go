// Package loader fetches a dataset once and publishes it as a query engine.
//
// Both documents are requested concurrently and the engine is published only
// when both arrive. A load whose consumer has gone away is discarded instead
// of published; the requests themselves run to completion.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"filings/internal/core"
	"filings/internal/engine"
	applog "filings/internal/log"
	"filings/internal/sheets"
)

// Messages reported to users when a document cannot be loaded.
const (
	MsgRecordsFailed = "Failed to load contributors data"
	MsgTotalsFailed  = "Failed to load contributor totals"
)

// ErrDiscarded is returned when the consumer was torn down before the load
// finished.
var ErrDiscarded = errors.New("load discarded after consumer teardown")

// LoadError is a failed load. Error returns the user-facing message; the
// cause is kept for logs.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// Dataset is the pair of documents one load produces.
type Dataset struct {
	Rows   []core.RawRow
	Totals map[string]core.RawTotal
}

// Options tune a load.
type Options struct {
	// Timeout bounds both requests together. Zero means no limit.
	Timeout   time.Duration
	CacheSize int
	Logger    *applog.Logger
}

func (o Options) logger() *applog.Logger {
	if o.Logger == nil {
		return applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentLoader)
	}
	return o.Logger.WithComponent(applog.ComponentLoader)
}

// Fetch reads both documents concurrently and waits for both. When both fail
// the records failure is reported.
func Fetch(ctx context.Context, src sheets.Source) (Dataset, error) {
	var (
		ds                 Dataset
		recordsErr, totErr error
		g                  errgroup.Group
	)
	g.Go(func() error {
		rows, err := src.ReadRecords(ctx)
		if err != nil {
			recordsErr = &LoadError{Message: MsgRecordsFailed, Err: err}
			return recordsErr
		}
		ds.Rows = rows
		return nil
	})
	g.Go(func() error {
		totals, err := src.ReadTotals(ctx)
		if err != nil {
			totErr = &LoadError{Message: MsgTotalsFailed, Err: err}
			return totErr
		}
		ds.Totals = totals
		return nil
	})
	// Both errors are checked below so the records failure wins over the
	// totals failure regardless of which goroutine returned first.
	_ = g.Wait()

	switch {
	case recordsErr != nil:
		return Dataset{}, recordsErr
	case totErr != nil:
		return Dataset{}, totErr
	}
	return ds, nil
}

// Load fetches a dataset from src and builds an engine over it. Cancelling
// ctx does not abort the requests; it makes Load return ErrDiscarded once
// they finish.
func Load(ctx context.Context, src sheets.Source, opts Options) (*engine.Engine, error) {
	logger := opts.logger()
	start := time.Now()

	fetchCtx := context.WithoutCancel(ctx)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, opts.Timeout)
		defer cancel()
	}

	logger.InfoContext(ctx, "Loading dataset", applog.FieldSource, src.Name(), applog.FieldOperation, applog.OpLoad)
	ds, err := Fetch(fetchCtx, src)
	if ctx.Err() != nil {
		logger.InfoContext(ctx, "Discarding dataset, consumer is gone", applog.FieldSource, src.Name())
		return nil, ErrDiscarded
	}
	if err != nil {
		var le *LoadError
		cause := err
		if errors.As(err, &le) {
			cause = le.Err
		}
		logger.ErrorContext(ctx, "Dataset load failed",
			applog.FieldSource, src.Name(),
			applog.FieldError, cause,
			applog.FieldDuration, time.Since(start).Milliseconds())
		return nil, err
	}

	snap := engine.FromRaw(ds.Rows, ds.Totals)
	logger.InfoContext(ctx, "Dataset loaded",
		applog.NewFields().
			WithLoad(src.Name(), len(ds.Rows), len(ds.Totals)).
			WithOperation(applog.OpLoad).
			ToSlice()...)
	logger.DebugContext(ctx, "Load timing", applog.FieldDuration, time.Since(start).Milliseconds())

	return engine.New(snap, opts.CacheSize, opts.Logger), nil
}

// LoadDataset is Load for callers that already hold the documents.
func LoadDataset(ds Dataset, opts Options) *engine.Engine {
	return engine.New(engine.FromRaw(ds.Rows, ds.Totals), opts.CacheSize, opts.Logger)
}

// Message returns the user-facing text of a load error.
func Message(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Message
	}
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to load data: %v", err)
}
