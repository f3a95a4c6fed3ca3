package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_Normalize(t *testing.T) {
	r := SearchRequest{Page: -3, Limit: 500, SortOrder: "whatever", Query: "  naruto ", Region: " Asian"}
	r.Normalize()

	assert.Equal(t, 1, r.Page)
	assert.Equal(t, MaxLimit, r.Limit)
	assert.Equal(t, SortDesc, r.SortOrder)
	assert.Equal(t, SortByPostDate, r.SortBy)
	assert.Equal(t, DateAll, r.DateFilter)
	assert.Equal(t, ContentTypeAll, r.ContentType)
	assert.Equal(t, "naruto", r.Query)
	assert.Equal(t, "asian", r.Region)

	r = SearchRequest{}
	r.Normalize()
	assert.Equal(t, DefaultLimit, r.Limit)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortAsc, ParseSortOrder(" ASC "))
	assert.Equal(t, SortDesc, ParseSortOrder("desc"))
	assert.Equal(t, SortDesc, ParseSortOrder(""))
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("created_at")
	require.NoError(t, err)
	assert.Equal(t, SortByCreatedAt, f)

	f, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByPostDate, f)

	_, err = ParseSortField("id; DROP TABLE")
	assert.Error(t, err)
}

func TestContentRecord_SortTimeAndNumericID(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	posted := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	r := ContentRecord{ID: "42", CreatedAt: created}
	assert.Equal(t, created, r.SortTime())
	assert.Equal(t, float64(42), r.NumericID())

	r.PostDate = &posted
	assert.Equal(t, posted, r.SortTime())

	r.ID = "abc"
	assert.Equal(t, float64(0), r.NumericID())
}

func TestContentRecord_MatchesText(t *testing.T) {
	r := ContentRecord{Name: "Tokyo Nights", Slug: "tokyo-nights", Category: "Drama"}

	assert.True(t, r.MatchesText("tokyo"))
	assert.True(t, r.MatchesText("NIGHTS"))
	assert.True(t, r.MatchesText("dram"))
	assert.True(t, r.MatchesText(""))
	assert.False(t, r.MatchesText("osaka"))
}

func TestContentType(t *testing.T) {
	assert.True(t, VipAsian.IsVip())
	assert.False(t, Asian.IsVip())
	assert.Equal(t, TierVip, VipBanned.Tier())
	assert.Equal(t, "banned", VipBanned.Region())
	assert.Equal(t, ContentTypeAll, ParseContentType(""))
	assert.Equal(t, VipWestern, ParseContentType(" VIP-Western "))
}
