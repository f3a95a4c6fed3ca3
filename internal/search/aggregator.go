package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/pagination"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/utils"
	"golang.org/x/sync/semaphore"
)

const DefaultOverfetch = 10

// Store is what the aggregator needs from the content store.
type Store interface {
	storage.Reader
	storage.HealthChecker
}

type Config struct {
	// Overfetch is added to every per-source cap.
	Overfetch int
	// MaxConcurrency bounds in-flight source queries per request. 0 means one per source.
	MaxConcurrency int
	// Location is the zone whose midnight anchors date presets.
	Location *time.Location
	Now      func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Overfetch < 0 {
		c.Overfetch = 0
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Aggregator fans a search out to the selected sources and merges the pages.
// It keeps no per-request state, so one instance serves concurrent requests.
type Aggregator struct {
	store    Store
	registry *source.Registry
	executor *Executor
	metrics  *Metrics
	cfg      Config
}

func NewAggregator(store Store, registry *source.Registry, metrics *Metrics, cfg Config) *Aggregator {
	return &Aggregator{
		store:    store,
		registry: registry,
		executor: NewExecutor(store, metrics),
		metrics:  metrics,
		cfg:      cfg.withDefaults(),
	}
}

// Search returns a non-nil error only for invalid requests (unknown content
// type, bad month). Store outages and unexpected failures come back as an
// envelope with Error set, so callers always get one response shape.
//
// Total is the sum of per-source counts while each source is only read up to
// its cap, so deep pages can be short even though TotalPages promises more.
func (a *Aggregator) Search(ctx context.Context, req domain.SearchRequest, withDebug bool) (resp *domain.SearchResponse, err error) {
	started := time.Now()
	req.Normalize()

	sources, err := a.registry.SelectRegion(req.ContentType, req.Region)
	if err != nil {
		return nil, err
	}
	rng, err := domain.ResolveDateRange(req.DateFilter, req.Month, a.cfg.Now().In(a.cfg.Location))
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Search aggregation panicked",
				"panic", r,
				"contentType", req.ContentType,
				"stack", string(debug.Stack()))
			a.metrics.observeSearch(outcomeInternal, time.Since(started))
			resp = failure(req, domain.ErrCodeInternal, "unexpected error while searching", started)
			err = nil
		}
	}()

	if err := a.store.Ping(ctx); err != nil {
		slog.Error("Content store is unavailable", "error", err)
		a.metrics.observeSearch(outcomeStoreUnavailable, time.Since(started))
		return failure(req, domain.ErrCodeStoreUnavailable, "content store is unavailable", started), nil
	}

	perSource := utils.CeilDiv(req.Limit, len(sources)) + a.cfg.Overfetch
	q := Query{
		Filter: storage.Filter{Range: rng, Text: req.Query, Categories: req.Categories},
		Sort:   storage.Sort{Field: req.SortBy, Order: req.SortOrder},
		Page:   storage.Page{Limit: perSource},
	}

	results := a.fanOut(ctx, sources, q)
	merged, counts, total, failed := mergeResults(results, q.Sort)

	from, to := pagination.Window(len(merged), req.Page, req.Limit)
	data := make([]domain.ContentRecord, 0, to-from)
	data = append(data, merged[from:to]...)

	resp = &domain.SearchResponse{
		Page:       req.Page,
		PerPage:    req.Limit,
		Total:      total,
		TotalPages: pagination.TotalPages(total, req.Limit),
		Data:       data,
		SearchTime: time.Since(started).Milliseconds(),
		Sources:    counts,
	}

	if withDebug {
		keys := make([]domain.ContentType, 0, len(sources))
		for _, s := range sources {
			keys = append(keys, s.Key)
		}
		resp.Debug = &domain.SearchDebug{
			PerSourceLimit: perSource,
			Sources:        keys,
			SortBy:         req.SortBy,
			SortOrder:      req.SortOrder,
			Query:          req.Query,
			Region:         req.Region,
			Categories:     req.Categories,
			DateRange:      rng,
			Merged:         len(merged),
			FailedSources:  failed,
		}
	}

	a.metrics.observeSearch(outcomeOK, time.Since(started))
	slog.Debug("Search completed",
		"contentType", req.ContentType,
		"sources", len(sources),
		"merged", len(merged),
		"total", total,
		"took", time.Since(started))
	return resp, nil
}

// fanOut queries every source concurrently and waits for all of them. Each
// goroutine writes only its own slot.
func (a *Aggregator) fanOut(ctx context.Context, sources []source.Source, q Query) []SourceResult {
	limit := a.cfg.MaxConcurrency
	if limit <= 0 {
		limit = len(sources)
	}
	sem := semaphore.NewWeighted(int64(limit))

	results := make([]SourceResult, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(index int, current source.Source) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[index] = a.executor.degrade(current, fmt.Errorf("acquire slot: %w", err))
				return
			}
			defer sem.Release(1)

			results[index] = a.executor.Execute(ctx, current, q)
		}(i, src)
	}
	wg.Wait()

	return results
}

func mergeResults(results []SourceResult, srt storage.Sort) ([]domain.ContentRecord, []domain.SourceCount, int64, []domain.ContentType) {
	size := 0
	for _, r := range results {
		size += len(r.Rows)
	}

	merged := make([]domain.ContentRecord, 0, size)
	counts := make([]domain.SourceCount, 0, len(results))
	var total int64
	var failed []domain.ContentType

	for _, r := range results {
		for _, row := range r.Rows {
			row.ContentType = string(r.Source.Key)
			merged = append(merged, row)
		}
		counts = append(counts, domain.SourceCount{Source: r.Source.Key, Count: r.Count})
		total += r.Count
		if r.Err != nil {
			failed = append(failed, r.Source.Key)
		}
	}

	slices.SortStableFunc(merged, func(x, y domain.ContentRecord) int {
		return storage.Compare(srt, x, y)
	})
	return merged, counts, total, failed
}

func failure(req domain.SearchRequest, code domain.ErrorCode, msg string, started time.Time) *domain.SearchResponse {
	return &domain.SearchResponse{
		Page:       req.Page,
		PerPage:    req.Limit,
		Total:      0,
		TotalPages: 0,
		Data:       []domain.ContentRecord{},
		Error:      code,
		Message:    msg,
		SearchTime: time.Since(started).Milliseconds(),
	}
}
