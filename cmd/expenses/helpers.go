package main

import (
	"context"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/config"
	"github.com/Veraticus/expense-tracker/internal/report"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

// initStorage opens the configured database and brings it up to date.
// Failure here is fatal to the command.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, common.NewUserError("Failed to open expense database "+cfg.DatabasePath, err)
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("Failed to initialize expense database "+cfg.DatabasePath, err)
	}

	slog.Debug("opened expense database", "path", cfg.DatabasePath)
	return store, nil
}

// closeStorage releases the database handle, logging any failure.
func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "path", store.Path(), "error", err)
	}
}

// newRenderer builds the pie chart renderer from configuration.
func newRenderer(cfg config.Config) *report.PieRenderer {
	opts := []report.Option{report.WithSize(cfg.ReportWidth, cfg.ReportHeight)}
	if !cfg.ReportOpen {
		opts = append(opts, report.WithOpener(nil))
	}
	return report.NewPieRenderer(cfg.ReportPath, opts...)
}

// loadConfig resolves the configuration the command runs with.
func loadConfig() config.Config {
	return config.Load(viper.GetViper())
}
