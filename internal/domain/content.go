package domain

import (
	"strconv"
	"strings"
	"time"
)

// ContentRecord is one row of a content source.
// ID is unique within its source only; ContentType is assigned when results are merged.
type ContentRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Category    string     `json:"category,omitempty"`
	PostDate    *time.Time `json:"postDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ContentType string     `json:"contentType,omitempty"`
}

// SortTime is the ordering key used everywhere: postDate, falling back to createdAt.
func (r ContentRecord) SortTime() time.Time {
	if r.PostDate != nil && !r.PostDate.IsZero() {
		return *r.PostDate
	}
	return r.CreatedAt
}

// NumericID coerces the opaque id to a number. Non-numeric ids yield 0.
func (r ContentRecord) NumericID() float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(r.ID), 64)
	if err != nil {
		return 0
	}
	return n
}

// MatchesText reports whether q is a case-insensitive substring of name, slug or category.
func (r ContentRecord) MatchesText(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Slug), q) ||
		strings.Contains(strings.ToLower(r.Category), q)
}
