package search

import (
	"context"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countFailingStore struct {
	Store
}

func (c countFailingStore) Count(context.Context, string, storage.Filter) (int64, error) {
	return 0, errors.New("statement timeout")
}

func TestExecutor_Execute(t *testing.T) {
	store := newStore(t, map[domain.ContentType][]domain.ContentRecord{
		domain.Asian: {rec("1", "a", day("2024-01-01")), rec("2", "b", day("2024-01-02"))},
	})
	asian, ok := source.NewDefault().Get(domain.Asian)
	require.True(t, ok)

	q := Query{
		Sort: storage.Sort{Field: domain.SortByPostDate, Order: domain.SortDesc},
		Page: storage.Page{Limit: 1},
	}

	t.Run("returns page and full count", func(t *testing.T) {
		res := NewExecutor(store, nil).Execute(context.Background(), asian, q)
		require.NoError(t, res.Err)
		assert.Equal(t, []string{"2"}, ids(res.Rows))
		assert.Equal(t, int64(2), res.Count)
	})

	t.Run("count failure drops rows too", func(t *testing.T) {
		res := NewExecutor(countFailingStore{store}, nil).Execute(context.Background(), asian, q)
		assert.Error(t, res.Err)
		assert.NotNil(t, res.Rows)
		assert.Empty(t, res.Rows)
		assert.Equal(t, int64(0), res.Count)
	})

	t.Run("unknown table degrades", func(t *testing.T) {
		missing := source.Source{Key: "ghost", Table: "ghost_links"}
		res := NewExecutor(store, nil).Execute(context.Background(), missing, q)
		assert.Error(t, res.Err)
		assert.Empty(t, res.Rows)
	})
}
