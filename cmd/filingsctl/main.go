// Command filingsctl queries, exports and maintains campaign filing data from
// the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"filings/internal/backend"
	"filings/internal/cli"
	"filings/internal/config"
	"filings/internal/engine"
	"filings/internal/loader"
	applog "filings/internal/log"
	"filings/internal/sheets"
	"filings/internal/sheets/memory"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	envFile  string
	dataDir  string
	logLevel string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "filingsctl",
		Short:         "Query and maintain campaign finance filings",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.envFile, "env-file", ".env", "Environment file to load before reading configuration")
	pf.StringVarP(&g.dataDir, "data", "d", "", "Read the JSON documents from this directory instead of the configured backend")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.DurationVar(&g.timeout, "timeout", 30*time.Second, "Fetch timeout")

	rootCmd.AddCommand(queryCmd(g))
	rootCmd.AddCommand(detailCmd(g))
	rootCmd.AddCommand(totalsCmd(g))
	rootCmd.AddCommand(importCmd(g))
	rootCmd.AddCommand(exportCmd(g))

	return rootCmd
}

// logger writes to stderr so command output stays machine readable.
func (g *globals) logger(cmd *cobra.Command) *applog.Logger {
	level, err := applog.ParseLevel(g.logLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentCLI,
		Output:    cmd.ErrOrStderr(),
	})
}

func (g *globals) config() (*config.Config, error) {
	if err := cli.LoadEnvFile(g.envFile); err != nil {
		return nil, err
	}
	return cli.LoadAndValidateConfig()
}

// source resolves where data is read from. --data wins over the configured
// backend. The returned func releases backend resources.
func (g *globals) source(ctx context.Context, logger *applog.Logger) (sheets.Source, func(), error) {
	if g.dataDir != "" {
		return memory.NewFromFiles(g.dataDir), func() {}, nil
	}
	cfg, err := g.config()
	if err != nil {
		return nil, nil, err
	}
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", bc.Type, err)
	}
	return res.Source, func() {
		if err := res.Close(); err != nil {
			logger.Warn("Backend cleanup failed", applog.FieldError, err)
		}
	}, nil
}

// engine loads the whole dataset once and returns an engine over it.
func (g *globals) engine(cmd *cobra.Command) (*engine.Engine, error) {
	logger := g.logger(cmd)
	src, release, err := g.source(cmd.Context(), logger)
	if err != nil {
		return nil, err
	}
	defer release()

	return loader.Load(cmd.Context(), src, loader.Options{
		Timeout: g.timeout,
		Logger:  logger,
	})
}
