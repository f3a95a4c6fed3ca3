// Package source holds the fixed registry of content sources.
// Selection is a lookup over an ordered list built once at startup.
package source

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
)

// Source binds a content type to the physical table (or index) that stores it.
type Source struct {
	Key   domain.ContentType `json:"key"`
	Table string             `json:"-"`
	Tier  domain.Tier        `json:"tier"`
	// Region is the category segment, e.g. "asian".
	Region string `json:"region"`
}

type Registry struct {
	sources []Source
	byKey   map[domain.ContentType]int
}

// TableName maps a content type to its table: "vip-asian" -> "vip_asian_links".
func TableName(ct domain.ContentType) string {
	return strings.ReplaceAll(string(ct), "-", "_") + "_links"
}

// NewDefault builds the registry of all eight sources in canonical order.
func NewDefault() *Registry {
	sources := make([]Source, 0, len(domain.ContentTypes))
	for _, ct := range domain.ContentTypes {
		sources = append(sources, Source{
			Key:    ct,
			Table:  TableName(ct),
			Tier:   ct.Tier(),
			Region: ct.Region(),
		})
	}
	r, err := New(sources)
	if err != nil {
		panic(err)
	}
	return r
}

func New(sources []Source) (*Registry, error) {
	r := &Registry{
		sources: make([]Source, 0, len(sources)),
		byKey:   make(map[domain.ContentType]int, len(sources)),
	}
	for _, s := range sources {
		if s.Key == "" || s.Table == "" {
			return nil, fmt.Errorf("source key and table are required: %+v", s)
		}
		if s.Key == domain.ContentTypeAll {
			return nil, fmt.Errorf("source key %q is reserved", s.Key)
		}
		if _, dup := r.byKey[s.Key]; dup {
			return nil, fmt.Errorf("duplicate source key %q", s.Key)
		}
		r.byKey[s.Key] = len(r.sources)
		r.sources = append(r.sources, s)
	}
	return r, nil
}

// All returns a copy of every source in registry order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) Get(ct domain.ContentType) (Source, bool) {
	i, ok := r.byKey[ct]
	if !ok {
		return Source{}, false
	}
	return r.sources[i], true
}

// Select resolves "all" to every source and a known key to that one source.
func (r *Registry) Select(ct domain.ContentType) ([]Source, error) {
	if ct == "" || ct == domain.ContentTypeAll {
		return r.All(), nil
	}
	s, ok := r.Get(ct)
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown contentType %q", ct))
	}
	return []Source{s}, nil
}

func (r *Registry) Len() int {
	return len(r.sources)
}

// Tables returns the physical table names in registry order.
func (r *Registry) Tables() []string {
	out := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, s.Table)
	}
	return out
}

// SelectRegion narrows Select to sources of one region ("asian" keeps asian
// and vip-asian). An empty or "all" region keeps the whole selection.
func (r *Registry) SelectRegion(ct domain.ContentType, region string) ([]Source, error) {
	sources, err := r.Select(ct)
	if err != nil {
		return nil, err
	}
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" || region == string(domain.ContentTypeAll) {
		return sources, nil
	}

	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Region == region {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, apperr.NewValidation(fmt.Sprintf("no source of contentType %q in region %q", ct, region))
	}
	return out, nil
}
