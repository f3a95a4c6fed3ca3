package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/codec"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrSearchFailed     = errors.New("search failed")
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 16 << 20
)

// PageRequest asks for one page of one content type under a filter tuple.
type PageRequest struct {
	ContentType domain.ContentType
	Filters     Filters
	Page        int
}

type Fetcher interface {
	Fetch(ctx context.Context, req PageRequest) (*domain.SearchResponse, error)
}

type HTTPFetcherOption func(*HTTPFetcher)

func WithHttpClient(c *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.http = c
	}
}

func WithCodec(c codec.Codec) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.codec = c
	}
}

// HTTPFetcher calls GET /search and decodes the {"data": ...} envelope.
type HTTPFetcher struct {
	base  url.URL
	http  *http.Client
	codec codec.Codec
}

func NewHTTPFetcher(baseURL string, opts ...HTTPFetcherOption) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	f := &HTTPFetcher{
		base:  *base,
		http:  &http.Client{Timeout: defaultTimeout},
		codec: codec.NewObfuscator(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req PageRequest) (*domain.SearchResponse, error) {
	reqURL := f.base.JoinPath("/search")
	reqURL.RawQuery = searchQuery(req).Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := f.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d, body: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var env codec.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	var out domain.SearchResponse
	if err := f.codec.Decode(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if out.Failed() {
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, out.Error, out.Message)
	}
	return &out, nil
}

func searchQuery(req PageRequest) url.Values {
	f := req.Filters
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(req.Page, 1)))
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if req.ContentType != "" {
		q.Set("contentType", string(req.ContentType))
	}
	if f.SortBy != "" {
		q.Set("sortBy", string(f.SortBy))
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", string(f.SortOrder))
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	for _, c := range f.Categories {
		q.Add("categories", c)
	}
	if f.DateFilter != "" {
		q.Set("dateFilter", string(f.DateFilter))
	}
	if f.Month != 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	return q
}
