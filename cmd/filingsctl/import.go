package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"filings/internal/amqp"
	applog "filings/internal/log"
	"filings/internal/storage"
	"filings/internal/worker"
)

func importCmd(g *globals) *cobra.Command {
	var (
		dbPath  string
		publish bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy filings from the selected source into the SQLite store",
		Long: "Replaces the filings held in SQLite with the ones read from the source. " +
			"Contributor totals are rebuilt in-process, or by filings-worker when --publish is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.SQLiteDBPath
			}
			if publish && cfg.AMQPURL == "" {
				return errors.New("--publish requires AMQP_URL")
			}

			src, release, err := g.source(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer release()

			repo, err := storage.NewSQLiteRepository(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer repo.Close()
			if src.Name() == repo.Name() {
				return fmt.Errorf("source and destination are both %s", repo.Name())
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			rows, err := src.ReadRecords(ctx)
			if err != nil {
				return fmt.Errorf("read filings from %s: %w", src.Name(), err)
			}
			if err := repo.ReplaceRecords(ctx, rows); err != nil {
				return err
			}
			id, err := repo.RecordImport(ctx, src.Name(), len(rows))
			if err != nil {
				return err
			}
			logger.Info("Filings imported",
				applog.FieldOperation, applog.OpImport,
				applog.FieldSource, src.Name(),
				applog.FieldRows, len(rows),
				"import_id", id)

			out := cmd.OutOrStdout()
			if publish {
				client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
				if err != nil {
					return err
				}
				defer client.Close()

				msg := amqp.NewTotalsRebuildMessage(src.Name(), len(rows))
				if err := client.PublishTotalsRebuild(ctx, msg); err != nil {
					return fmt.Errorf("publish totals rebuild: %w", err)
				}
				_, err = fmt.Fprintf(out, "Imported %d filings from %s (import %d); totals rebuild queued as %s\n",
					len(rows), src.Name(), id, msg.ID)
				return err
			}

			n, err := worker.NewTotalsWorker(repo, logger).Rebuild(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Imported %d filings from %s (import %d); rebuilt %d contributor totals\n",
				len(rows), src.Name(), id, n)
			return err
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default SQLITE_DB_PATH)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Queue the totals rebuild on AMQP instead of running it here")
	return cmd
}
