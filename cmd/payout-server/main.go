package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gocardlessosm/internal/backend"
	"gocardlessosm/internal/cli"
	apphttp "gocardlessosm/internal/http"
	"gocardlessosm/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(cli.SetupLogger(slog.LevelInfo, os.Stdout))
	logger := cli.SetupLogger(cfg.SlogLevel(), os.Stdout)

	logger.Info("Starting payout server",
		"port", cfg.Port,
		"sinks", cfg.ExportSinks,
		log.FieldOperation, log.OpStartup)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Failed to create backend config", log.FieldError, err)
		os.Exit(1)
	}

	payouts, cleanup, err := backend.NewPayoutService(context.Background(), backend.NewFactory(logger), backendConfig, logger)
	if err != nil {
		logger.Error("Failed to initialize export sinks", log.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:                 ":" + cfg.Port,
		MaxUploadBytes:       cfg.MaxUploadBytes,
		RateLimitRPM:         cfg.RateLimitRPM,
		SessionTTL:           cfg.SessionTTL,
		SessionCacheSize:     cfg.SessionCacheSize,
		CacheCleanupInterval: cfg.CacheCleanupInterval,
	}, payouts, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := cleanup(); err != nil {
			logger.Warn("Sink cleanup failed", log.FieldError, err)
		}
	})

	logger.Info("Listening", "addr", srv.Addr, "sinks", payouts.Sinks())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
