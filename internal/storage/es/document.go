package es

import (
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// ContentDocument is the indexed form of a ContentRecord. SortDate stores
// postDate ?? createdAt so range filters and sorting need no scripts.
type ContentDocument struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug,omitempty"`
	Category  string     `json:"category,omitempty"`
	PostDate  *time.Time `json:"post_date,omitempty"`
	SortDate  time.Time  `json:"sort_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toDocument(r domain.ContentRecord) ContentDocument {
	return ContentDocument{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Category:  r.Category,
		PostDate:  r.PostDate,
		SortDate:  r.SortTime(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (d ContentDocument) toRecord() domain.ContentRecord {
	return domain.ContentRecord{
		ID:        d.ID,
		Name:      d.Name,
		Slug:      d.Slug,
		Category:  d.Category,
		PostDate:  d.PostDate,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"name":       types.NewKeywordProperty(),
			"slug":       types.NewKeywordProperty(),
			"category":   types.NewKeywordProperty(),
			"post_date":  types.NewDateProperty(),
			"sort_date":  types.NewDateProperty(),
			"created_at": types.NewDateProperty(),
			"updated_at": types.NewDateProperty(),
		},
	}
}
