package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
)

// Query is one filtered, sorted and paginated read against a single source.
type Query struct {
	Filter storage.Filter
	Sort   storage.Sort
	Page   storage.Page
}

type SourceResult struct {
	Source source.Source
	Rows   []domain.ContentRecord
	// Count is the source's full match count, independent of Page.
	Count int64
	// Err is set when the source was degraded to empty. It is informational only.
	Err error
}

// Executor runs read-only queries against one source at a time. It never
// returns an error: a failing source yields no rows and a zero count.
type Executor struct {
	reader  storage.Reader
	metrics *Metrics
}

func NewExecutor(reader storage.Reader, metrics *Metrics) *Executor {
	return &Executor{reader: reader, metrics: metrics}
}

func (e *Executor) Execute(ctx context.Context, src source.Source, q Query) (res SourceResult) {
	res.Source = src
	res.Rows = []domain.ContentRecord{}

	defer func() {
		if r := recover(); r != nil {
			res = e.degrade(src, fmt.Errorf("panic: %v", r))
		}
	}()

	rows, err := e.reader.Find(ctx, src.Table, q.Filter, q.Sort, q.Page)
	if err != nil {
		return e.degrade(src, fmt.Errorf("find: %w", err))
	}

	count, err := e.reader.Count(ctx, src.Table, q.Filter)
	if err != nil {
		return e.degrade(src, fmt.Errorf("count: %w", err))
	}

	res.Rows = rows
	res.Count = count
	e.metrics.sourceRows(src.Key, len(rows))
	return res
}

func (e *Executor) degrade(src source.Source, err error) SourceResult {
	slog.Error("Source query failed, returning empty result",
		"source", src.Key,
		"table", src.Table,
		"error", err)
	e.metrics.sourceFailed(src.Key)

	return SourceResult{
		Source: src,
		Rows:   []domain.ContentRecord{},
		Err:    err,
	}
}
