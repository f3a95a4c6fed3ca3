package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type SeedConfig struct {
	FixturePath string
	factory.StorageConfig
}

func (as *AppConfig) Load() (*SeedConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/catalog_seed/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	fixturePath := os.Getenv("SEED_FILE")
	if fixturePath == "" {
		slog.Error("SEED_FILE environment variable is not set")
		return nil, fmt.Errorf("SEED_FILE environment variable is not set")
	}
	// the seeder writes the fixture itself
	storageCfg.SeedFile = ""

	return &SeedConfig{
		FixturePath:   fixturePath,
		StorageConfig: *storageCfg,
	}, nil
}
