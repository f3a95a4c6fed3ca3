package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/factory"
)

func main() {
	slog.Info("Starting catalog seed...")

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Seeding failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *SeedConfig) error {
	f, err := os.Open(cfg.FixturePath)
	if err != nil {
		return err
	}
	defer f.Close()

	fixture, err := storage.LoadFixture(f)
	if err != nil {
		return err
	}

	registry := source.NewDefault()
	store, err := factory.NewStore(ctx, &cfg.StorageConfig, registry)
	if err != nil {
		return err
	}
	defer store.Close()

	start := time.Now()
	if err := storage.SeedFixture(ctx, store, registry, fixture); err != nil {
		return err
	}

	slog.Info("Seed completed", "storage", cfg.Type, "fixture", cfg.FixturePath, "took", time.Since(start))
	return nil
}
