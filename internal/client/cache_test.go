package client

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_Equal(t *testing.T) {
	base := Filters{Query: "q", Categories: []string{"a", "b"}, Month: 3, DateFilter: domain.DateLast7, Limit: 20}

	tests := []struct {
		name  string
		other Filters
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "query", other: Filters{Query: "x", Categories: []string{"a", "b"}, Month: 3, DateFilter: domain.DateLast7, Limit: 20}},
		{name: "category order", other: Filters{Query: "q", Categories: []string{"b", "a"}, Month: 3, DateFilter: domain.DateLast7, Limit: 20}},
		{name: "month", other: Filters{Query: "q", Categories: []string{"a", "b"}, DateFilter: domain.DateLast7, Limit: 20}},
		{name: "preset", other: Filters{Query: "q", Categories: []string{"a", "b"}, Month: 3, Limit: 20}},
		{name: "limit", other: Filters{Query: "q", Categories: []string{"a", "b"}, Month: 3, DateFilter: domain.DateLast7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestCache_PeekIsPure(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewCache(WithClock(c.Now), WithTTL(time.Minute))
	cache.Put(domain.Asian, Entry{Links: []domain.ContentRecord{{ID: "1"}}, FetchedAt: c.Now()})

	c.Advance(time.Hour)

	e, ok := cache.Peek(domain.Asian)
	require.True(t, ok)
	assert.False(t, cache.IsFresh(e))
	_, ok = cache.Peek(domain.Asian)
	assert.True(t, ok)

	e.Links[0].ID = "mutated"
	again, _ := cache.Peek(domain.Asian)
	assert.Equal(t, "1", again.Links[0].ID)
}

func TestCache_EvictIfStale(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewCache(WithClock(c.Now), WithTTL(time.Minute))
	cache.Put(domain.Asian, Entry{FetchedAt: c.Now()})

	assert.False(t, cache.EvictIfStale(domain.Asian))
	assert.False(t, cache.EvictIfStale(domain.Western))

	c.Advance(time.Minute)
	assert.True(t, cache.EvictIfStale(domain.Asian))
	_, ok := cache.Peek(domain.Asian)
	assert.False(t, ok)
}

func TestCache_KeysAndDelete(t *testing.T) {
	cache := NewCache()
	cache.Put(domain.VipAsian, Entry{})
	cache.Put(domain.Asian, Entry{})

	assert.Equal(t, []domain.ContentType{domain.Asian, domain.VipAsian}, cache.Keys())

	cache.Delete(domain.Asian)
	assert.Equal(t, []domain.ContentType{domain.VipAsian}, cache.Keys())
}

type memPersister struct {
	saved   map[domain.ContentType]Entry
	loadErr error
}

func (m *memPersister) LoadAll() (map[domain.ContentType]Entry, error) {
	return m.saved, m.loadErr
}

func (m *memPersister) Save(key domain.ContentType, e Entry) error {
	m.saved[key] = e
	return nil
}

func (m *memPersister) Delete(key domain.ContentType) error {
	delete(m.saved, key)
	return nil
}

func TestCache_Persister(t *testing.T) {
	p := &memPersister{saved: map[domain.ContentType]Entry{
		domain.Banned: {CurrentPage: 2, TotalPages: 4, HasMore: true},
	}}
	cache := NewCache(WithPersister(p))

	e, ok := cache.Peek(domain.Banned)
	require.True(t, ok)
	assert.Equal(t, 2, e.CurrentPage)

	cache.Put(domain.Unknown, Entry{CurrentPage: 1})
	assert.Contains(t, p.saved, domain.Unknown)

	cache.Delete(domain.Banned)
	assert.NotContains(t, p.saved, domain.Banned)
}

func TestCache_PersisterLoadFailure(t *testing.T) {
	p := &memPersister{saved: map[domain.ContentType]Entry{}, loadErr: errors.New("locked")}

	cache := NewCache(WithPersister(p))

	assert.Empty(t, cache.Keys())
}

func TestSQLitePersister_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "cache.db")
	fetched := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	post := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	p, err := OpenSQLite(dbPath)
	require.NoError(t, err)

	entry := Entry{
		Links: []domain.ContentRecord{
			{ID: "7", Name: "Seven", Slug: "seven", Category: "drama", PostDate: &post, CreatedAt: post, UpdatedAt: post, ContentType: "asian"},
		},
		Categories:  []string{"drama"},
		CurrentPage: 1,
		TotalPages:  3,
		Total:       120,
		HasMore:     true,
		Filters:     Filters{Query: "sev", Categories: []string{"drama"}, Month: 2},
		FetchedAt:   fetched,
	}
	require.NoError(t, p.Save(domain.Asian, entry))
	require.NoError(t, p.Save(domain.Western, Entry{FetchedAt: fetched}))
	require.NoError(t, p.Save(domain.Western, Entry{CurrentPage: 5, FetchedAt: fetched}))
	require.NoError(t, p.Delete(domain.Banned))
	require.NoError(t, p.Close())

	reopened, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	cache := NewCache(WithPersister(reopened), WithClock(func() time.Time { return fetched }))

	got, ok := cache.Peek(domain.Asian)
	require.True(t, ok)
	assert.Equal(t, entry.Filters, got.Filters)
	assert.Equal(t, entry.Categories, got.Categories)
	assert.Equal(t, 3, got.TotalPages)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "seven", got.Links[0].Slug)
	assert.True(t, got.Links[0].PostDate.Equal(post))
	assert.True(t, got.FetchedAt.Equal(fetched))
	assert.True(t, cache.IsFresh(got))

	western, ok := cache.Peek(domain.Western)
	require.True(t, ok)
	assert.Equal(t, 5, western.CurrentPage)

	cache.Delete(domain.Asian)
	all, err := reopened.LoadAll()
	require.NoError(t, err)
	assert.NotContains(t, all, domain.Asian)
}
