package storage

import (
	"cmp"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
)

// Compare orders two records by the sort field, then createdAt, then numeric id.
// The direction applies to every key.
func Compare(srt Sort, a, b domain.ContentRecord) int {
	c := comparePrimary(srt.Field, a, b)
	if c == 0 {
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c == 0 {
		c = cmp.Compare(a.NumericID(), b.NumericID())
	}
	if srt.Order == domain.SortAsc {
		return c
	}
	return -c
}

func Less(srt Sort) func(a, b domain.ContentRecord) bool {
	return func(a, b domain.ContentRecord) bool {
		return Compare(srt, a, b) < 0
	}
}

func comparePrimary(field domain.SortField, a, b domain.ContentRecord) int {
	switch field {
	case domain.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case domain.SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	default:
		return a.SortTime().Compare(b.SortTime())
	}
}
