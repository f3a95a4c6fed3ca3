package domain

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder is case-insensitive and defaults to DESC.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

type SortField string

const (
	SortByPostDate  SortField = "postDate"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByName      SortField = "name"
)

var sortFields = map[string]SortField{
	"postdate":   SortByPostDate,
	"post_date":  SortByPostDate,
	"createdat":  SortByCreatedAt,
	"created_at": SortByCreatedAt,
	"updatedat":  SortByUpdatedAt,
	"updated_at": SortByUpdatedAt,
	"name":       SortByName,
}

func ParseSortField(s string) (SortField, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortByPostDate, nil
	}
	f, ok := sortFields[strings.ToLower(s)]
	if !ok {
		return "", apperr.NewValidation(fmt.Sprintf("unsupported sortBy %q", s))
	}
	return f, nil
}

// SearchRequest is the normalized input of one aggregated search.
type SearchRequest struct {
	Page        int
	Limit       int
	SortBy      SortField
	SortOrder   SortOrder
	Query       string
	Categories  []string
	DateFilter  DatePreset
	Month       int
	ContentType ContentType
	// Region narrows the selected sources, e.g. "asian" for asian and vip-asian.
	Region string
}

// Normalize clamps paging and fills defaults. It never fails.
func (r *SearchRequest) Normalize() {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.SortBy == "" {
		r.SortBy = SortByPostDate
	}
	if r.SortOrder != SortAsc {
		r.SortOrder = SortDesc
	}
	if r.DateFilter == "" {
		r.DateFilter = DateAll
	}
	if r.ContentType == "" {
		r.ContentType = ContentTypeAll
	}
	r.Query = strings.TrimSpace(r.Query)
	r.Region = strings.ToLower(strings.TrimSpace(r.Region))
}

type SourceCount struct {
	Source ContentType `json:"source"`
	Count  int64       `json:"count"`
}

// SearchResponse is the decoded search envelope. On failure Error and Message
// are set and Data is empty.
type SearchResponse struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Data       []ContentRecord `json:"data"`
	SearchTime int64           `json:"searchTime"`
	Sources    []SourceCount   `json:"sources,omitempty"`
	Error      ErrorCode       `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Debug      *SearchDebug    `json:"debug,omitempty"`
}

func (r *SearchResponse) Failed() bool {
	return r.Error != ""
}

// SearchDebug echoes the parameters computed for a request.
type SearchDebug struct {
	PerSourceLimit int           `json:"perSourceLimit"`
	Sources        []ContentType `json:"sources"`
	SortBy         SortField     `json:"sortBy"`
	SortOrder      SortOrder     `json:"sortOrder"`
	Query          string        `json:"query,omitempty"`
	Region         string        `json:"region,omitempty"`
	Categories     []string      `json:"categories,omitempty"`
	DateRange      *DateRange    `json:"dateRange,omitempty"`
	Merged         int           `json:"merged"`
	FailedSources  []ContentType `json:"failedSources,omitempty"`
}

type ErrorCode string

const (
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)
