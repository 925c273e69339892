package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"filings/internal/core"
	applog "filings/internal/log"
	"filings/internal/rollup"
)

func totalsCmd(g *globals) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Rebuild the contributor totals document from the filings",
		Long: "Reads the filings from the selected source, sums them per contributor " +
			"and writes the rollup document that the engine joins against.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			src, release, err := g.source(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer release()

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()
			rows, err := src.ReadRecords(ctx)
			if err != nil {
				return fmt.Errorf("read filings from %s: %w", src.Name(), err)
			}
			totals := rollup.Build(rows)

			if err := writeTotals(cmd.OutOrStdout(), out, totals); err != nil {
				return err
			}
			logger.Info("Contributor totals rebuilt",
				applog.FieldOperation, applog.OpRebuild,
				applog.FieldSource, src.Name(),
				applog.FieldRows, len(rows),
				applog.FieldTotals, len(totals))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "Destination file, - for stdout")
	return cmd
}

// writeTotals writes to stdout when path is empty or "-".
func writeTotals(stdout io.Writer, path string, totals map[string]core.RawTotal) error {
	if path == "" || path == "-" {
		return rollup.Write(stdout, totals)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rollup.Write(f, totals); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
