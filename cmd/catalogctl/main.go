package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/client"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "catalogctl",
		Usage: "Browse the content catalog from the terminal",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Catalog API base URL",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("CATALOG_API"),
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "SQLite cache file",
				Value: defaultCachePath(),
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "How long a cached result set stays fresh",
				Value: client.DefaultTTL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			} else {
				slog.SetLogLoggerLevel(slog.LevelWarn)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			SearchCommand(),
			MoreCommand(),
			CacheCommand(),
			TokenCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "catalog-hunter", "cache.db")
}

type session struct {
	cache     *client.Cache
	persister *client.SQLitePersister
	fetcher   *client.HTTPFetcher
}

func openSession(c *cli.Command) (*session, error) {
	persister, err := client.OpenSQLite(c.String("cache"))
	if err != nil {
		return nil, err
	}

	fetcher, err := client.NewHTTPFetcher(c.String("api"))
	if err != nil {
		persister.Close()
		return nil, err
	}

	cache := client.NewCache(
		client.WithTTL(c.Duration("ttl")),
		client.WithPersister(persister),
	)
	return &session{cache: cache, persister: persister, fetcher: fetcher}, nil
}

func (s *session) loader(ct string) (*client.Loader, error) {
	return client.NewLoader(domain.ParseContentType(ct), s.cache, s.fetcher, client.WithDebounce(time.Millisecond))
}

func (s *session) Close() {
	if err := s.persister.Close(); err != nil {
		slog.Warn("failed to close cache", "error", err)
	}
}
