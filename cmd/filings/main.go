package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"filings/internal/backend"
	"filings/internal/cli"
	apphttp "filings/internal/http"
	"filings/internal/loader"
	applog "filings/internal/log"
)

func main() {
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg, applog.ComponentApp)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize data source", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer res.Close()

	var (
		provider *loader.Provider
		srv      *apphttp.Server
	)
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		provider.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	// The server answers 503 until the load below is published.
	provider = loader.Start(ctx, res.Source, loader.Options{
		Timeout:   cfg.FetchTimeout,
		CacheSize: cfg.CacheSize,
		Logger:    logger,
	})
	srv = apphttp.NewServer(":"+cfg.Port, provider, apphttp.Options{Logger: logger})

	logger.Info("Starting filings server",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		applog.FieldSource, res.Source.Name())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
