package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/pagination"
)

const DefaultDebounce = 300 * time.Millisecond

type State string

const (
	StateEmpty       State = "EMPTY"
	StateLoading     State = "LOADING"
	StateReady       State = "READY"
	StateLoadingMore State = "LOADING_MORE"
)

var ErrNoContentType = errors.New("content type is required")

type LoaderOption func(*Loader)

func WithDebounce(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.debounce = d
	}
}

// Snapshot is a consistent copy of the loader for rendering.
type Snapshot struct {
	ContentType domain.ContentType
	State       State
	Filters     Filters
	Entry       Entry
	HasEntry    bool
	Stale       bool
	Err         error
}

// Loader drives one content type. Filter changes are debounced and reuse a
// fresh cache entry with equal filters. Every page-1 fetch takes a new
// sequence number and responses for older sequences are dropped.
type Loader struct {
	contentType domain.ContentType
	cache       *Cache
	fetcher     Fetcher
	debounce    time.Duration

	mu      sync.Mutex
	state   State
	filters Filters
	seq     uint64
	timer   *time.Timer
	pending sync.WaitGroup
	lastErr error
}

func NewLoader(contentType domain.ContentType, cache *Cache, fetcher Fetcher, opts ...LoaderOption) (*Loader, error) {
	if contentType == "" {
		return nil, ErrNoContentType
	}

	l := &Loader{
		contentType: contentType,
		cache:       cache,
		fetcher:     fetcher,
		debounce:    DefaultDebounce,
		state:       StateEmpty,
	}
	for _, opt := range opts {
		opt(l)
	}

	if e, ok := cache.Peek(contentType); ok {
		l.filters = e.Filters
		l.state = StateReady
	}
	return l, nil
}

// SetFilters activates f. It returns false when the cached entry already
// answers f; otherwise a page-1 fetch is scheduled after the debounce window,
// replacing any fetch scheduled before.
func (l *Loader) SetFilters(ctx context.Context, f Filters) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.filters = f
	l.cancelTimerLocked()

	if e, ok := l.cache.Peek(l.contentType); ok && e.Filters.Equal(f) && l.cache.IsFresh(e) {
		// a load-more in flight is for these filters; a page-1 fetch is not
		if l.state != StateLoadingMore {
			l.seq++
			l.state = StateReady
		}
		return false
	}

	l.pending.Add(1)
	l.timer = time.AfterFunc(l.debounce, func() {
		defer l.pending.Done()
		if err := l.Refresh(ctx); err != nil {
			slog.Warn("debounced refresh failed", "contentType", l.contentType, "error", err)
		}
	})
	return true
}

// Wait blocks until a scheduled debounced fetch has finished.
func (l *Loader) Wait() {
	l.pending.Wait()
}

// Refresh fetches page 1 for the active filters now.
func (l *Loader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.cancelTimerLocked()
	l.seq++
	seq := l.seq
	filters := l.filters
	l.state = StateLoading
	l.mu.Unlock()

	resp, err := l.fetcher.Fetch(ctx, PageRequest{ContentType: l.contentType, Filters: filters, Page: 1})

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		slog.Debug("discarding superseded response", "contentType", l.contentType, "seq", seq)
		return nil
	}
	if err != nil {
		l.failLocked(err)
		return err
	}

	e := Entry{
		Links:       slices.Clone(resp.Data),
		Categories:  mergeFacets(nil, resp.Data),
		CurrentPage: resp.Page,
		TotalPages:  resp.TotalPages,
		Total:       resp.Total,
		HasMore:     pagination.HasMore(resp.Page, resp.TotalPages),
		Filters:     filters,
		FetchedAt:   l.cache.now(),
	}
	l.cache.Put(l.contentType, e)
	l.state = StateReady
	l.lastErr = nil
	return nil
}

// LoadMore appends the next page. It reports false without fetching when the
// loader is not READY, when a fetch is already in flight or when the entry has
// no more pages.
func (l *Loader) LoadMore(ctx context.Context) (bool, error) {
	l.mu.Lock()
	if l.state != StateReady {
		l.mu.Unlock()
		return false, nil
	}
	e, ok := l.cache.Peek(l.contentType)
	if !ok || !e.HasMore || !e.Filters.Equal(l.filters) {
		l.mu.Unlock()
		return false, nil
	}
	l.state = StateLoadingMore
	seq := l.seq
	l.mu.Unlock()

	resp, err := l.fetcher.Fetch(ctx, PageRequest{ContentType: l.contentType, Filters: e.Filters, Page: e.CurrentPage + 1})

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return true, nil
	}
	if err != nil {
		l.failLocked(err)
		return true, err
	}

	e.Links = append(e.Links, resp.Data...)
	e.Categories = mergeFacets(e.Categories, resp.Data)
	e.CurrentPage = resp.Page
	e.TotalPages = resp.TotalPages
	e.Total = resp.Total
	e.HasMore = pagination.HasMore(e.CurrentPage, e.TotalPages)
	e.FetchedAt = l.cache.now()
	l.cache.Put(l.contentType, e)
	l.state = StateReady
	l.lastErr = nil
	return true, nil
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Snapshot{
		ContentType: l.contentType,
		State:       l.state,
		Filters:     l.filters,
		Err:         l.lastErr,
	}
	if e, ok := l.cache.Peek(l.contentType); ok {
		s.Entry = e
		s.HasEntry = true
		s.Stale = !e.Filters.Equal(l.filters) || !l.cache.IsFresh(e)
	}
	return s
}

// failLocked keeps the cached entry and leaves the loading states.
func (l *Loader) failLocked(err error) {
	slog.Error("fetch failed", "contentType", l.contentType, "error", err)
	l.lastErr = err
	if _, ok := l.cache.Peek(l.contentType); ok {
		l.state = StateReady
		return
	}
	l.state = StateEmpty
}

func (l *Loader) cancelTimerLocked() {
	if l.timer == nil {
		return
	}
	if l.timer.Stop() {
		l.pending.Done()
	}
	l.timer = nil
}

// mergeFacets unions the categories of rows into facets, keeping first-seen order.
func mergeFacets(facets []string, rows []domain.ContentRecord) []string {
	out := slices.Clone(facets)
	for _, r := range rows {
		if r.Category == "" || slices.Contains(out, r.Category) {
			continue
		}
		out = append(out, r.Category)
	}
	if out == nil {
		out = []string{}
	}
	return out
}
