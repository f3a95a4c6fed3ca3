package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/auth"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/codec"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/search"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

type downStore struct {
	*in_mem.Store
}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func seededStore(t *testing.T) *in_mem.Store {
	t.Helper()
	ctx := context.Background()
	reg := source.NewDefault()

	store := in_mem.NewStore()
	require.NoError(t, store.EnsureTables(ctx, reg.Tables()))
	require.NoError(t, store.Seed(ctx, "asian_links", []domain.ContentRecord{
		{ID: "1", Name: "Seoul Story", Slug: "seoul-story", Category: "drama", PostDate: day("2024-01-01"), CreatedAt: *day("2024-01-01")},
	}))
	require.NoError(t, store.Seed(ctx, "western_links", []domain.ContentRecord{
		{ID: "2", Name: "Paris Night", Slug: "paris-night", Category: "action", PostDate: day("2024-01-02"), CreatedAt: *day("2024-01-02")},
	}))
	require.NoError(t, store.Seed(ctx, "vip_banned_links", []domain.ContentRecord{
		{ID: "3", Name: "Hidden Gem", Slug: "hidden-gem", Category: "comedy", PostDate: day("2024-01-03"), CreatedAt: *day("2024-01-03")},
	}))
	return store
}

func newTestEcho(t *testing.T, store search.Store) *echo.Echo {
	t.Helper()
	reg := source.NewDefault()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	agg := search.NewAggregator(store, reg, nil, search.Config{
		Overfetch: search.DefaultOverfetch,
		Location:  time.UTC,
		Now:       func() time.Time { return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC) },
	})
	NewSearchRouter(e, agg).Bind()
	NewContentRouter(e, reg, store, auth.NewJWTManager(testSecret, time.Hour)).Bind()
	return e
}

func get(e *echo.Echo, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeRaw(t *testing.T, rec *httptest.ResponseRecorder) domain.SearchResponse {
	t.Helper()
	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func names(resp domain.SearchResponse) []string {
	out := make([]string, 0, len(resp.Data))
	for _, r := range resp.Data {
		out = append(out, r.Name)
	}
	return out
}

func TestSearch_EncodedEnvelopeRoundTrips(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	rec := get(e, "/search?limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var env codec.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data)

	var resp domain.SearchResponse
	require.NoError(t, codec.NewObfuscator().Decode(env.Data, &resp))
	assert.Equal(t, []string{"Hidden Gem", "Paris Night", "Seoul Story"}, names(resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "vip-banned", resp.Data[0].ContentType)
	assert.Nil(t, resp.Debug)
}

func TestSearch_QueryParams(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "ascending", query: "sortOrder=asc", want: []string{"Seoul Story", "Paris Night", "Hidden Gem"}},
		{name: "q", query: "q=PARIS", want: []string{"Paris Night"}},
		{name: "search alias", query: "search=gem", want: []string{"Hidden Gem"}},
		{name: "category repeated and comma separated", query: "category=drama&categories=comedy,horror", want: []string{"Hidden Gem", "Seoul Story"}},
		{name: "single content type", query: "contentType=western", want: []string{"Paris Night"}},
		{name: "region", query: "region=banned", want: []string{"Hidden Gem"}},
		{name: "month", query: "month=1&dateFilter=today", want: []string{"Hidden Gem", "Paris Night", "Seoul Story"}},
		{name: "month overrides unknown preset", query: "month=1&dateFilter=fortnight", want: []string{"Hidden Gem", "Paris Night", "Seoul Story"}},
		{name: "preset excludes old rows", query: "dateFilter=last7", want: []string{}},
		{name: "limit and page", query: "limit=1&page=2", want: []string{"Paris Night"}},
		{name: "invalid paging falls back", query: "limit=abc&page=-1", want: []string{"Hidden Gem", "Paris Night", "Seoul Story"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, "/search?raw=1&"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, names(decodeRaw(t, rec)))
		})
	}
}

func TestSearch_Debug(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	rec := get(e, "/search?debug=1&limit=16&q=x&category=a")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeRaw(t, rec)
	require.NotNil(t, resp.Debug)
	assert.Equal(t, 12, resp.Debug.PerSourceLimit)
	assert.Equal(t, "x", resp.Debug.Query)
	assert.Equal(t, []string{"a"}, resp.Debug.Categories)
	assert.Len(t, resp.Debug.Sources, 8)
}

func TestSearch_Validation(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	for _, q := range []string{
		"contentType=vip-martian",
		"month=13",
		"month=feb",
		"sortBy=rating",
		"dateFilter=fortnight",
		"month=13&dateFilter=fortnight",
		"region=martian",
	} {
		t.Run(q, func(t *testing.T) {
			rec := get(e, "/search?"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation error")
		})
	}
}

func TestSearch_StoreUnavailable(t *testing.T) {
	e := newTestEcho(t, downStore{seededStore(t)})

	rec := get(e, "/search?raw=1&page=2")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decodeRaw(t, rec)
	assert.Equal(t, domain.ErrCodeStoreUnavailable, resp.Error)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 0, resp.TotalPages)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)

	// the encoded form carries the same envelope
	rec = get(e, "/search")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var env codec.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var decoded domain.SearchResponse
	require.NoError(t, codec.NewObfuscator().Decode(env.Data, &decoded))
	assert.True(t, decoded.Failed())
}

func TestSources(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	rec := get(e, "/sources")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SourcesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sources, 8)
	assert.Equal(t, domain.Asian, body.Sources[0].Key)
	assert.Equal(t, domain.TierVip, body.Sources[7].Tier)
	assert.NotContains(t, rec.Body.String(), "_links")
}

func TestContent(t *testing.T) {
	e := newTestEcho(t, seededStore(t))

	vip, err := auth.NewJWTManager(testSecret, time.Hour).GenerateToken("alice", domain.TierVip)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		token  string
		status int
		want   string
	}{
		{name: "free record", target: "/content/asian/seoul-story", status: http.StatusOK, want: "Seoul Story"},
		{name: "missing slug", target: "/content/asian/nope", status: http.StatusNotFound},
		{name: "unknown free type", target: "/content/martian/x", status: http.StatusNotFound},
		{name: "vip without token", target: "/content/vip-banned/hidden-gem", status: http.StatusUnauthorized},
		{name: "vip with token", target: "/content/vip-banned/hidden-gem", token: vip, status: http.StatusOK, want: "Hidden Gem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.token != "" {
				rec = get(e, tt.target, echo.HeaderAuthorization, "Bearer "+tt.token)
			} else {
				rec = get(e, tt.target)
			}
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.want == "" {
				return
			}
			var got domain.ContentRecord
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got.Name)
			assert.NotEmpty(t, got.ContentType)
		})
	}
}
