package pg

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/jackc/pgx/v5"
)

const (
	selectColumns = `id::text, name, COALESCE(slug, ''), COALESCE(category, ''), post_date, created_at, updated_at`
	sortDateExpr  = `COALESCE(post_date, created_at)`
)

var sortColumns = map[domain.SortField]string{
	domain.SortByPostDate:  sortDateExpr,
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByName:      "lower(name)",
}

// queryBuilder accumulates WHERE predicates and their positional args.
type queryBuilder struct {
	where []string
	args  []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func newFilterBuilder(filter storage.Filter) *queryBuilder {
	b := &queryBuilder{}

	if filter.Range != nil {
		from, to := b.arg(filter.Range.From), b.arg(filter.Range.To)
		b.where = append(b.where, fmt.Sprintf("%s >= %s AND %s < %s", sortDateExpr, from, sortDateExpr, to))
	}

	if text := strings.TrimSpace(filter.Text); text != "" {
		p := b.arg("%" + escapeLike(text) + "%")
		b.where = append(b.where, fmt.Sprintf("(name ILIKE %s OR slug ILIKE %s OR category ILIKE %s)", p, p, p))
	}

	if len(filter.Categories) > 0 {
		b.where = append(b.where, fmt.Sprintf("category = ANY(%s)", b.arg(filter.Categories)))
	}

	return b
}

func (b *queryBuilder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func orderClause(srt storage.Sort) string {
	col, ok := sortColumns[srt.Field]
	if !ok {
		col = sortDateExpr
	}
	dir := "DESC"
	if srt.Order == domain.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, created_at %s, id %s", col, dir, dir, dir)
}

func buildFindSQL(table string, filter storage.Filter, srt storage.Sort, page storage.Page) (string, []any) {
	b := newFilterBuilder(filter)
	sql := "SELECT " + selectColumns + " FROM " + quoteTable(table) + b.whereClause() + orderClause(srt)
	if page.Limit > 0 {
		sql += " LIMIT " + b.arg(page.Limit)
	}
	if page.Offset > 0 {
		sql += " OFFSET " + b.arg(page.Offset)
	}
	return sql, b.args
}

func buildCountSQL(table string, filter storage.Filter) (string, []any) {
	b := newFilterBuilder(filter)
	return "SELECT COUNT(*) FROM " + quoteTable(table) + b.whereClause(), b.args
}

func quoteTable(table string) string {
	return pgx.Identifier{table}.Sanitize()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
