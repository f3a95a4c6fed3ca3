package router

import (
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/codec"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/search"
	"github.com/labstack/echo/v4"
)

type SearchRouter struct {
	e          *echo.Echo
	aggregator *search.Aggregator
	codec      codec.Codec
}

type SearchRouterOption func(*SearchRouter)

func WithCodec(c codec.Codec) SearchRouterOption {
	return func(r *SearchRouter) {
		r.codec = c
	}
}

func NewSearchRouter(e *echo.Echo, aggregator *search.Aggregator, opts ...SearchRouterOption) *SearchRouter {
	r := &SearchRouter{
		e:          e,
		aggregator: aggregator,
		codec:      codec.NewObfuscator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
}

// searchHandler godoc
// @Summary Search every content source
// @Description Fans out to the selected sources, merges by date and paginates. The body is codec-encoded unless raw=1 or debug=1.
// @Tags search
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, 1..100" default(50)
// @Param sortBy query string false "postDate, createdAt, updatedAt or name" default(postDate)
// @Param sortOrder query string false "ASC or DESC" default(DESC)
// @Param q query string false "Case-insensitive text over name, slug and category"
// @Param search query string false "Alias of q"
// @Param categories query []string false "Category filter, repeated or comma separated"
// @Param dateFilter query string false "all, today, yesterday, last7, last30, thisMonth, prevMonth" default(all)
// @Param month query int false "Calendar month of the current year, overrides dateFilter"
// @Param region query string false "asian, western, banned or unknown"
// @Param contentType query string false "all or one source key" default(all)
// @Param raw query bool false "Return the plain JSON envelope"
// @Param debug query bool false "Return the plain envelope with computed parameters"
// @Success 200 {object} codec.Envelope
// @Failure 400 {object} map[string]string
// @Failure 503 {object} domain.SearchResponse
// @Router /search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	req, mode, err := parseSearchRequest(c)
	if err != nil {
		return err
	}

	resp, err := r.aggregator.Search(c.Request().Context(), req, mode.debug)
	if err != nil {
		return err
	}

	status := statusOf(resp)
	if mode.raw || mode.debug {
		return c.JSON(status, resp)
	}

	encoded, err := r.codec.Encode(resp)
	if err != nil {
		return fmt.Errorf("failed to encode search response: %w", err)
	}
	return c.JSON(status, codec.Envelope{Data: encoded})
}

func statusOf(resp *domain.SearchResponse) int {
	switch resp.Error {
	case "":
		return http.StatusOK
	case domain.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
