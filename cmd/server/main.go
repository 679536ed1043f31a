package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/events"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/server"
	"finance-tracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.Server.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()
	slog.Info("Database ready", "driver", cfg.Database.Driver)

	layer, err := cache.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if layer != nil {
		defer layer.Close()
		slog.Info("Report cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		// Events are best effort; the API works without a broker.
		slog.Warn("Event publishing disabled", "error", err)
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	repo := repositories.NewTransactionRepository(db.DB)
	if stored, err := repo.Count(ctx); err != nil {
		slog.Warn("Failed to count stored transactions", "error", err)
	} else {
		metrics.RecordGauge("transactions.stored", float64(stored), nil)
	}
	reportCache := services.NewReportCache(layer, cfg.Cache.TTL)

	srv := server.New(cfg, server.Dependencies{
		TransactionService: services.NewTransactionService(
			repo,
			reportCache,
			publisher,
			services.NewTransactionGenerator(),
			metrics,
		),
		ReportService: services.NewReportService(repo, reportCache, metrics),
		Health:        db,
	})

	return srv.Run(ctx)
}
