package es

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_NoFilterMatchesAll(t *testing.T) {
	q := buildQuery(storage.Filter{})

	require.NotNil(t, q.MatchAll)
	assert.Nil(t, q.Bool)
}

func TestBuildQuery_AllFilters(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	q := buildQuery(storage.Filter{
		Range:      &domain.DateRange{From: from, To: to},
		Text:       " drama* ",
		Categories: []string{"drama", "comedy"},
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 3)

	rq, ok := q.Bool.Filter[0].Range["sort_date"].(types.DateRangeQuery)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01T00:00:00Z", *rq.Gte)
	assert.Equal(t, "2024-03-01T00:00:00Z", *rq.Lt)

	text := q.Bool.Filter[1].Bool
	require.NotNil(t, text)
	assert.Equal(t, "1", text.MinimumShouldMatch)
	require.Len(t, text.Should, 3)
	for i, field := range []string{"name", "slug", "category"} {
		w, ok := text.Should[i].Wildcard[field]
		require.True(t, ok, field)
		assert.Equal(t, `*drama\**`, *w.Value)
		assert.True(t, *w.CaseInsensitive)
	}

	terms := q.Bool.Filter[2].Terms
	require.NotNil(t, terms)
	assert.Equal(t, []types.FieldValue{"drama", "comedy"}, terms.TermsQuery["category"])
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name   string
		sort   storage.Sort
		keys   []string
		expect sortorder.SortOrder
	}{
		{
			name:   "post date desc",
			sort:   storage.Sort{Field: domain.SortByPostDate, Order: domain.SortDesc},
			keys:   []string{"sort_date", "created_at", "id"},
			expect: sortorder.Desc,
		},
		{
			name:   "name asc",
			sort:   storage.Sort{Field: domain.SortByName, Order: domain.SortAsc},
			keys:   []string{"name", "created_at", "id"},
			expect: sortorder.Asc,
		},
		{
			name:   "unknown field falls back to sort date",
			sort:   storage.Sort{Field: "bogus", Order: domain.SortDesc},
			keys:   []string{"sort_date", "created_at", "id"},
			expect: sortorder.Desc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSort(tt.sort)
			require.Len(t, got, len(tt.keys))
			for i, key := range tt.keys {
				opts, ok := got[i].(*types.SortOptions)
				require.True(t, ok)
				fs, ok := opts.SortOptions[key]
				require.True(t, ok, key)
				assert.Equal(t, tt.expect, *fs.Order)
			}
		})
	}
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "catalog_vip_asian_links", ClientConfig{}.indexName("vip_asian_links"))
	assert.Equal(t, "test_asian_links", ClientConfig{IndexPrefix: "Test_"}.indexName("asian_links"))
}

func TestDocumentRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := domain.ContentRecord{ID: "7", Name: "Seoul", Slug: "seoul", Category: "drama", CreatedAt: created, UpdatedAt: created}

	doc := toDocument(rec)
	assert.Equal(t, created, doc.SortDate)
	assert.Equal(t, rec, doc.toRecord())
}
