package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
)

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// Filter is the read predicate shared by Find and Count. Every set field is ANDed.
type Filter struct {
	// Range applies to postDate, falling back to createdAt.
	Range *domain.DateRange
	// Text is a case-insensitive substring matched against name, slug or category.
	Text       string
	Categories []string
}

type Sort struct {
	Field domain.SortField
	Order domain.SortOrder
}

type Page struct {
	Limit  int
	Offset int
}

// Reader is the read-only contract one content table must satisfy.
// table is the physical name from the source registry.
type Reader interface {
	// Find returns rows ordered by sort.Field, then createdAt, then id, all in sort.Order.
	Find(ctx context.Context, table string, filter Filter, sort Sort, page Page) ([]domain.ContentRecord, error)
	Count(ctx context.Context, table string, filter Filter) (int64, error)
	// FindBySlug returns apperr.ErrNotFound (wrapped) when no row matches.
	FindBySlug(ctx context.Context, table string, slug string) (*domain.ContentRecord, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Store interface {
	Reader
	HealthChecker
	Close()
}

// Seeder writes fixture rows. It is used by the seed command and tests, never by search.
type Seeder interface {
	EnsureTables(ctx context.Context, tables []string) error
	Seed(ctx context.Context, table string, records []domain.ContentRecord) error
}

// Stamp fills missing lifecycle timestamps.
func Stamp(records []domain.ContentRecord, now time.Time) {
	for i := range records {
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
		if records[i].UpdatedAt.IsZero() {
			records[i].UpdatedAt = records[i].CreatedAt
		}
	}
}
