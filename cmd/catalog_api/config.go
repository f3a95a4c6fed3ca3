package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/search"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type CatalogApiConfig struct {
	StorageConfig factory.StorageConfig
	Search        search.Config
	JwtSecret     string
	JwtExpiration time.Duration
}

func (as *AppConfig) Load() (*CatalogApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/catalog_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	overfetch, err := env.Int("SEARCH_OVERFETCH", search.DefaultOverfetch)
	if err != nil {
		return nil, err
	}
	concurrency, err := env.Int("SEARCH_MAX_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	loc, err := env.Location("SEARCH_TIMEZONE")
	if err != nil {
		return nil, err
	}
	jwtExp, err := env.Duration("VIP_JWT_EXPIRATION", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &CatalogApiConfig{
		StorageConfig: *storageCfg,
		Search: search.Config{
			Overfetch:      overfetch,
			MaxConcurrency: concurrency,
			Location:       loc,
		},
		JwtSecret:     os.Getenv("VIP_JWT_SECRET"),
		JwtExpiration: jwtExp,
	}, nil
}
