package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/utils"
	"github.com/labstack/echo/v4"
)

type outputMode struct {
	raw   bool
	debug bool
}

// parseSearchRequest reads the /search query string. Paging is lenient and
// falls back to defaults; enumerations and month are strict.
func parseSearchRequest(c echo.Context) (domain.SearchRequest, outputMode, error) {
	req := domain.SearchRequest{
		Page:      atoiOr(c.QueryParam("page"), domain.DefaultPage),
		Limit:     atoiOr(c.QueryParam("limit"), domain.DefaultLimit),
		SortOrder: domain.ParseSortOrder(c.QueryParam("sortOrder")),
		Query:     firstNonEmpty(c.QueryParam("q"), c.QueryParam("search")),
		Region:    c.QueryParam("region"),
	}

	var err error
	if req.SortBy, err = domain.ParseSortField(c.QueryParam("sortBy")); err != nil {
		return req, outputMode{}, err
	}
	if m := strings.TrimSpace(c.QueryParam("month")); m != "" {
		if req.Month, err = strconv.Atoi(m); err != nil {
			return req, outputMode{}, apperr.NewValidationWrap(fmt.Sprintf("invalid month %q", m), err)
		}
	}
	// a valid month wins over any preset, so the preset is not validated
	if req.Month >= 1 && req.Month <= 12 {
		req.DateFilter = domain.DateAll
	} else if req.DateFilter, err = domain.ParseDatePreset(c.QueryParam("dateFilter")); err != nil {
		return req, outputMode{}, err
	}

	params := c.QueryParams()
	req.Categories = utils.SplitList(append(params["categories"], params["category"]...))
	req.ContentType = domain.ParseContentType(c.QueryParam("contentType"))

	mode := outputMode{
		raw:   flag(c.QueryParam("raw")),
		debug: flag(c.QueryParam("debug")),
	}
	return req, mode, nil
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func flag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
