package es

import (
	"strings"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

var textFields = []string{"name", "slug", "category"}

var sortFields = map[domain.SortField]string{
	domain.SortByPostDate:  "sort_date",
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByName:      "name",
}

func buildQuery(filter storage.Filter) *types.Query {
	var filters []types.Query

	if filter.Range != nil {
		from := filter.Range.From.Format(time.RFC3339Nano)
		to := filter.Range.To.Format(time.RFC3339Nano)
		filters = append(filters, types.Query{
			Range: map[string]types.RangeQuery{
				"sort_date": types.DateRangeQuery{Gte: &from, Lt: &to},
			},
		})
	}

	if text := strings.TrimSpace(filter.Text); text != "" {
		pattern := "*" + escapeWildcard(text) + "*"
		caseInsensitive := true
		should := make([]types.Query, 0, len(textFields))
		for _, field := range textFields {
			should = append(should, types.Query{
				Wildcard: map[string]types.WildcardQuery{
					field: {Value: &pattern, CaseInsensitive: &caseInsensitive},
				},
			})
		}
		filters = append(filters, types.Query{
			Bool: &types.BoolQuery{Should: should, MinimumShouldMatch: "1"},
		})
	}

	if len(filter.Categories) > 0 {
		values := make([]types.FieldValue, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			values = append(values, c)
		}
		filters = append(filters, types.Query{
			Terms: &types.TermsQuery{
				TermsQuery: map[string]types.TermsQueryField{"category": values},
			},
		})
	}

	if len(filters) == 0 {
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}
	return &types.Query{Bool: &types.BoolQuery{Filter: filters}}
}

func buildSort(srt storage.Sort) []types.SortCombinations {
	field, ok := sortFields[srt.Field]
	if !ok {
		field = "sort_date"
	}
	order := sortorder.Desc
	if srt.Order == domain.SortAsc {
		order = sortorder.Asc
	}

	keys := []string{field, "created_at", "id"}
	out := make([]types.SortCombinations, 0, len(keys))
	for _, k := range keys {
		o := order
		out = append(out, &types.SortOptions{
			SortOptions: map[string]types.FieldSort{k: {Order: &o}},
		})
	}
	return out
}

func escapeWildcard(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}
