package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"budgetbot/internal/advisor"
	"budgetbot/internal/classify"
	"budgetbot/internal/common"
	"budgetbot/internal/expenses"
	"budgetbot/internal/export"
	"budgetbot/internal/extract"
	"budgetbot/internal/ocr"
	"budgetbot/internal/repository"
	"budgetbot/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, health, closeDB, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("db.open.failed", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	if err := health(ctx); err != nil {
		logger.Error("db.health.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("db.health.ok", "driver", cfg.Database.Driver)

	classifier := classify.NewKeywordClassifier()
	if err := classifier.Load(); err != nil {
		logger.Error("classifier.load.failed", "error", err)
		os.Exit(1)
	}

	var generator advisor.Generator
	if cfg.Advisor.APIToken != "" {
		generator = advisor.NewHFClient(cfg.Advisor, logger)
	} else {
		logger.Warn("advisor.model.disabled", "reason", "no API token configured")
	}

	srv := server.New(cfg.Server, server.Deps{
		Expenses:  expenses.NewService(repo, logger),
		Extractor: extract.NewExtractor(classifier, logger),
		Scanner:   ocr.NewScanner(cfg.OCR, logger),
		Advisor:   advisor.NewService(generator, logger),
		Exporter:  export.NewService(logger),
		Health:    health,
	}, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server.failed", "error", err)
		os.Exit(1)
	}
}

// openStorage opens the configured backend and returns the repository, a
// health probe, and a close function.
func openStorage(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (repository.ExpenseRepository, server.HealthChecker, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := repository.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewSQLiteExpenseRepository(db, logger)
		health := func(ctx context.Context) error { return db.PingContext(ctx) }
		return repo, health, func() { _ = db.Close() }, nil
	default:
		pool, err := repository.Open(ctx, cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewExpenseRepository(pool, logger)
		health := func(ctx context.Context) error {
			return repository.HealthCheck(ctx, pool, cfg.DialTimeout, logger)
		}
		return repo, health, func() { repository.Close(pool, logger) }, nil
	}
}
