package worker

import (
	"context"
	"fmt"
	"time"

	"filings/internal/amqp"
	applog "filings/internal/log"
	"filings/internal/rollup"
	"filings/internal/sheets"
)

// Store is what the worker needs from the database: the stored filings and a
// place to write the rebuilt rollup.
type Store interface {
	sheets.RecordReader
	sheets.TotalsReader
	sheets.TotalsWriter
}

// TotalsWorker keeps the contributor rollup in step with the stored filings.
type TotalsWorker struct {
	store  Store
	logger *applog.Logger
}

func NewTotalsWorker(store Store, logger *applog.Logger) *TotalsWorker {
	if logger == nil {
		logger = applog.Discard()
	}
	return &TotalsWorker{
		store:  store,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleRebuild processes a single rebuild message from AMQP.
func (w *TotalsWorker) HandleRebuild(ctx context.Context, msg *amqp.TotalsRebuildMessage) error {
	w.logger.InfoContext(ctx, "Processing rebuild message",
		applog.FieldMessageID, msg.ID,
		applog.FieldSource, msg.Source,
		applog.FieldRows, msg.Rows)

	n, err := w.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("rebuild for message %s: %w", msg.ID, err)
	}
	if msg.Rows > 0 && n == 0 {
		w.logger.WarnContext(ctx, "Rebuild produced no totals for a non-empty import",
			applog.FieldMessageID, msg.ID,
			applog.FieldRows, msg.Rows)
	}
	return nil
}

// Rebuild recomputes the rollup from every stored filing and replaces the
// stored totals. It returns the number of contributor entries written.
func (w *TotalsWorker) Rebuild(ctx context.Context) (int, error) {
	start := time.Now()

	rows, err := w.store.ReadRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("read records: %w", err)
	}

	totals := rollup.Build(rows)
	if err := w.store.ReplaceTotals(ctx, totals); err != nil {
		return 0, fmt.Errorf("replace totals: %w", err)
	}

	w.logger.InfoContext(ctx, "Rebuilt contributor totals",
		applog.FieldOperation, applog.OpRebuild,
		applog.FieldRows, len(rows),
		applog.FieldTotals, len(totals),
		applog.FieldDuration, time.Since(start).Milliseconds())

	return len(totals), nil
}

// StartupCheck rebuilds the rollup when filings are stored but no totals are.
// It covers rebuild messages lost while the worker was down.
func (w *TotalsWorker) StartupCheck(ctx context.Context) error {
	totals, err := w.store.ReadTotals(ctx)
	if err != nil {
		return fmt.Errorf("read totals for startup check: %w", err)
	}
	if len(totals) > 0 {
		w.logger.InfoContext(ctx, "Contributor totals present on startup", applog.FieldTotals, len(totals))
		return nil
	}

	rows, err := w.store.ReadRecords(ctx)
	if err != nil {
		return fmt.Errorf("read records for startup check: %w", err)
	}
	if len(rows) == 0 {
		w.logger.InfoContext(ctx, "No stored filings found on startup")
		return nil
	}

	w.logger.InfoContext(ctx, "Stored filings have no totals, rebuilding", applog.FieldRows, len(rows))
	_, err = w.Rebuild(ctx)
	return err
}
