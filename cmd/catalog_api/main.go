// Package main Catalog Hunter API
// @title Catalog Hunter API
// @version 1.0
// @description Aggregated search over the free and VIP content catalogs
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@cataloghunter.com
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/auth"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/router"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/search"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/server"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/catalog-hunter/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(sCfg.LogLevel)

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	registry := source.NewDefault()

	store, err := factory.NewStore(context.Background(), &cfg.StorageConfig, registry)
	if err != nil {
		slog.Error("Failed to create content store", "error", err)
		os.Exit(1)
		return
	}

	s := server.New(sCfg, pkgserver.NewPingHealthChecker("store", store)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics", prometheus.DefaultGatherer)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Catalog Hunter API is running")
	})

	metrics := search.NewMetrics(prometheus.DefaultRegisterer)
	aggregator := search.NewAggregator(store, registry, metrics, cfg.Search)

	jwtManager := auth.NewJWTManager(cfg.JwtSecret, cfg.JwtExpiration)
	if !jwtManager.Enabled() {
		slog.Warn("VIP_JWT_SECRET is not set, VIP content detail is disabled")
	}

	router.NewSearchRouter(s.Echo, aggregator).Bind()
	router.NewContentRouter(s.Echo, registry, store, jwtManager).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	store.Close()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
