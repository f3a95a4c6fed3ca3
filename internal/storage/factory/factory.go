package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/pg"
)

// Backend is a store that can also be seeded.
type Backend interface {
	storage.Store
	storage.Seeder
}

// NewStore creates the backend selected by cfg.Type. The in-memory backend gets
// one empty table per registry source and, when SeedFile is set, the fixture rows.
func NewStore(ctx context.Context, cfg *StorageConfig, reg *source.Registry) (Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool), nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewStore(*cfg.Es)

	case storage.InMem:
		store := in_mem.NewStore()
		if err := store.EnsureTables(ctx, reg.Tables()); err != nil {
			return nil, err
		}
		if cfg.SeedFile == "" {
			return store, nil
		}
		if err := seedFromFile(ctx, store, reg, cfg.SeedFile); err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}

func seedFromFile(ctx context.Context, seeder storage.Seeder, reg *source.Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	fixture, err := storage.LoadFixture(f)
	if err != nil {
		return err
	}
	return storage.SeedFixture(ctx, seeder, reg, fixture)
}
