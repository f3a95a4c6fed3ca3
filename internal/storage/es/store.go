package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Store keeps one index per source table.
type Store struct {
	client *elasticsearch.TypedClient
	config ClientConfig
}

func NewStore(config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Store{client: client, config: config}, nil
}

func (s *Store) Find(ctx context.Context, table string, filter storage.Filter, srt storage.Sort, page storage.Page) ([]domain.ContentRecord, error) {
	index := s.config.indexName(table)

	req := s.client.Search().
		Index(index).
		Query(buildQuery(filter)).
		Sort(buildSort(srt)...).
		From(page.Offset)
	if page.Limit > 0 {
		req = req.Size(page.Limit)
	}

	res, err := req.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch find failed", "error", err, "index", index)
		return nil, fmt.Errorf("failed to search %s: %w", index, err)
	}

	return mapHits(res.Hits.Hits)
}

func (s *Store) Count(ctx context.Context, table string, filter storage.Filter) (int64, error) {
	index := s.config.indexName(table)

	res, err := s.client.Count().Index(index).Query(buildQuery(filter)).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", index, err)
	}
	return res.Count, nil
}

func (s *Store) FindBySlug(ctx context.Context, table string, slug string) (*domain.ContentRecord, error) {
	index := s.config.indexName(table)

	res, err := s.client.Search().
		Index(index).
		Query(&types.Query{
			Term: map[string]types.TermQuery{"slug": {Value: slug}},
		}).
		Size(1).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", index, err)
	}

	records, err := mapHits(res.Hits.Hits)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("slug %q in %s: %w", slug, index, apperr.ErrNotFound)
	}
	return &records[0], nil
}

func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.client.Ping().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	if !ok {
		return fmt.Errorf("elasticsearch ping returned a non-success status")
	}
	return nil
}

func (s *Store) Close() {}

func (s *Store) EnsureTables(ctx context.Context, tables []string) error {
	mapping := buildMapping()
	for _, t := range tables {
		index := s.config.indexName(t)

		exists, err := s.client.Indices.Exists(index).Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to check if index %s exists: %w", index, err)
		}
		if exists {
			slog.Info("Index already exists", "index", index)
			continue
		}

		res, err := s.client.Indices.Create(index).Mappings(&mapping).Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", index, err)
		}
		if !res.Acknowledged {
			return fmt.Errorf("creation of index %s was not acknowledged", index)
		}
		slog.Info("Index created", "index", index)
	}
	return nil
}

func (s *Store) Seed(ctx context.Context, table string, records []domain.ContentRecord) error {
	if len(records) == 0 {
		return nil
	}
	index := s.config.indexName(table)

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         index,
		Client:        s.client,
		NumWorkers:    2,
		FlushBytes:    1e+6,
		FlushInterval: 5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64

	for _, r := range records {
		doc := toDocument(r)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed.Add(1)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				successful.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(records),
		"index", index)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d records into %s", n, len(records), index)
	}

	if _, err := s.client.Indices.Refresh().Index(index).Do(ctx); err != nil {
		return fmt.Errorf("failed to refresh %s: %w", index, err)
	}
	return nil
}

func mapHits(hits []types.Hit) ([]domain.ContentRecord, error) {
	records := make([]domain.ContentRecord, 0, len(hits))
	for _, hit := range hits {
		var doc ContentDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		records = append(records, doc.toRecord())
	}
	return records, nil
}

var _ storage.Store = (*Store)(nil)
var _ storage.Seeder = (*Store)(nil)
