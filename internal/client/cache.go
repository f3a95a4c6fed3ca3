package client

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
)

const DefaultTTL = 5 * time.Minute

// Filters is the filter tuple that produced a cache entry.
type Filters struct {
	Query      string            `json:"query,omitempty"`
	Categories []string          `json:"categories,omitempty"`
	Month      int               `json:"month,omitempty"`
	DateFilter domain.DatePreset `json:"dateFilter,omitempty"`
	SortBy     domain.SortField  `json:"sortBy,omitempty"`
	SortOrder  domain.SortOrder  `json:"sortOrder,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

func (f Filters) Equal(o Filters) bool {
	return f.Query == o.Query &&
		slices.Equal(f.Categories, o.Categories) &&
		f.Month == o.Month &&
		f.DateFilter == o.DateFilter &&
		f.SortBy == o.SortBy &&
		f.SortOrder == o.SortOrder &&
		f.Limit == o.Limit
}

// Entry is everything fetched so far for one content type under one filter tuple.
type Entry struct {
	Links       []domain.ContentRecord `json:"links"`
	Categories  []string               `json:"categories"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
	Total       int64                  `json:"total"`
	HasMore     bool                   `json:"hasMore"`
	Filters     Filters                `json:"filters"`
	FetchedAt   time.Time              `json:"fetchedAt"`
}

func (e Entry) clone() Entry {
	e.Links = slices.Clone(e.Links)
	e.Categories = slices.Clone(e.Categories)
	e.Filters.Categories = slices.Clone(e.Filters.Categories)
	return e
}

// Persister keeps cache entries across process runs.
type Persister interface {
	LoadAll() (map[domain.ContentType]Entry, error)
	Save(key domain.ContentType, e Entry) error
	Delete(key domain.ContentType) error
}

type CacheOption func(*Cache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

func WithPersister(p Persister) CacheOption {
	return func(c *Cache) {
		c.persister = p
	}
}

// Cache holds one entry per content type. Reads never evict; staleness is
// removed only through EvictIfStale.
type Cache struct {
	mu        sync.RWMutex
	entries   map[domain.ContentType]Entry
	ttl       time.Duration
	now       func() time.Time
	persister Persister
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[domain.ContentType]Entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.persister != nil {
		loaded, err := c.persister.LoadAll()
		if err != nil {
			slog.Warn("failed to load persisted cache", "error", err)
		}
		maps.Copy(c.entries, loaded)
	}
	return c
}

func (c *Cache) Peek(key domain.ContentType) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

func (c *Cache) IsFresh(e Entry) bool {
	return c.now().Sub(e.FetchedAt) < c.ttl
}

// EvictIfStale drops the entry for key when its age reached the TTL.
func (c *Cache) EvictIfStale(key domain.ContentType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.IsFresh(e) {
		return false
	}
	delete(c.entries, key)
	c.deletePersisted(key)
	return true
}

func (c *Cache) Put(key domain.ContentType, e Entry) {
	e = e.clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = e
	if c.persister != nil {
		if err := c.persister.Save(key, e); err != nil {
			slog.Warn("failed to persist cache entry", "contentType", key, "error", err)
		}
	}
}

func (c *Cache) Delete(key domain.ContentType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.deletePersisted(key)
}

func (c *Cache) Keys() []domain.ContentType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := slices.Collect(maps.Keys(c.entries))
	slices.Sort(keys)
	return keys
}

func (c *Cache) deletePersisted(key domain.ContentType) {
	if c.persister == nil {
		return
	}
	if err := c.persister.Delete(key); err != nil {
		slog.Warn("failed to delete persisted cache entry", "contentType", key, "error", err)
	}
}
