package in_mem

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
)

// Store keeps every table as a slice of records. It applies the same filter and
// ordering rules as the SQL stores.
type Store struct {
	storageLock sync.RWMutex
	tables      map[string][]domain.ContentRecord
}

func NewStore() *Store {
	return &Store{
		tables: make(map[string][]domain.ContentRecord),
	}
}

func (s *Store) EnsureTables(_ context.Context, tables []string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, t := range tables {
		if _, ok := s.tables[t]; !ok {
			s.tables[t] = nil
		}
	}
	return nil
}

func (s *Store) Seed(_ context.Context, table string, records []domain.ContentRecord) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, r := range records {
		if r.Slug != "" && s.slugTaken(table, r.Slug) {
			return fmt.Errorf("duplicate slug %q in %s", r.Slug, table)
		}
		r.ContentType = ""
		s.tables[table] = append(s.tables[table], r)
	}
	slog.Debug("Saved records to in-memory storage", "table", table, "count", len(records))
	return nil
}

func (s *Store) slugTaken(table, slug string) bool {
	for _, r := range s.tables[table] {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) Find(ctx context.Context, table string, filter storage.Filter, srt storage.Sort, page storage.Page) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.match(table, filter)
	if err != nil {
		return nil, err
	}

	less := storage.Less(srt)
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})

	if page.Offset >= len(rows) {
		return []domain.ContentRecord{}, nil
	}
	end := len(rows)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return rows[page.Offset:end], nil
}

func (s *Store) Count(ctx context.Context, table string, filter storage.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rows, err := s.match(table, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store) FindBySlug(ctx context.Context, table string, slug string) (*domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("relation %q does not exist", table)
	}
	for _, r := range rows {
		if slug != "" && r.Slug == slug {
			found := r
			return &found, nil
		}
	}
	return nil, fmt.Errorf("slug %q in %s: %w", slug, table, apperr.ErrNotFound)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}

func (s *Store) match(table string, filter storage.Filter) ([]domain.ContentRecord, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("relation %q does not exist", table)
	}

	out := make([]domain.ContentRecord, 0, len(rows))
	for _, r := range rows {
		if filter.Range != nil && !filter.Range.Contains(r.SortTime()) {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, r.Category) {
			continue
		}
		if !r.MatchesText(strings.TrimSpace(filter.Text)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

var _ storage.Store = (*Store)(nil)
var _ storage.Seeder = (*Store)(nil)
