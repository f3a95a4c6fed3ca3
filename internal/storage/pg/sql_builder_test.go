package pg

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestBuildFindSQL_NoFilter(t *testing.T) {
	sql, args := buildFindSQL("asian_links", storage.Filter{},
		storage.Sort{Field: domain.SortByPostDate, Order: domain.SortDesc},
		storage.Page{Limit: 17})

	assert.Equal(t,
		`SELECT id::text, name, COALESCE(slug, ''), COALESCE(category, ''), post_date, created_at, updated_at FROM "asian_links"`+
			` ORDER BY COALESCE(post_date, created_at) DESC, created_at DESC, id DESC LIMIT $1`,
		sql)
	assert.Equal(t, []any{17}, args)
}

func TestBuildFindSQL_AllFilters(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	sql, args := buildFindSQL("vip_asian_links", storage.Filter{
		Range:      &domain.DateRange{From: from, To: to},
		Text:       "50%_off",
		Categories: []string{"drama", "action"},
	}, storage.Sort{Field: domain.SortByName, Order: domain.SortAsc}, storage.Page{Limit: 10, Offset: 20})

	assert.Contains(t, sql, `FROM "vip_asian_links" WHERE COALESCE(post_date, created_at) >= $1 AND COALESCE(post_date, created_at) < $2`)
	assert.Contains(t, sql, `AND (name ILIKE $3 OR slug ILIKE $3 OR category ILIKE $3)`)
	assert.Contains(t, sql, `AND category = ANY($4)`)
	assert.Contains(t, sql, `ORDER BY lower(name) ASC, created_at ASC, id ASC LIMIT $5 OFFSET $6`)
	assert.Equal(t, []any{from, to, `%50\%\_off%`, []string{"drama", "action"}, 10, 20}, args)
}

func TestBuildCountSQL(t *testing.T) {
	sql, args := buildCountSQL("western_links", storage.Filter{Text: "x"})

	assert.Equal(t, `SELECT COUNT(*) FROM "western_links" WHERE (name ILIKE $1 OR slug ILIKE $1 OR category ILIKE $1)`, sql)
	assert.Equal(t, []any{"%x%"}, args)
}

func TestOrderClause_UnknownFieldFallsBackToSortDate(t *testing.T) {
	assert.Equal(t,
		" ORDER BY COALESCE(post_date, created_at) DESC, created_at DESC, id DESC",
		orderClause(storage.Sort{Field: "bogus"}))
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"bad""name"`, quoteTable(`bad"name`))
}
