package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/auth"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/labstack/echo/v4"
)

// ContentRouter serves the source registry and single-record lookups.
type ContentRouter struct {
	e        *echo.Echo
	registry *source.Registry
	reader   storage.Reader
	jwt      *auth.JWTManager
}

func NewContentRouter(e *echo.Echo, registry *source.Registry, reader storage.Reader, jwt *auth.JWTManager) *ContentRouter {
	return &ContentRouter{
		e:        e,
		registry: registry,
		reader:   reader,
		jwt:      jwt,
	}
}

func (r *ContentRouter) Bind() {
	r.e.GET("/sources", r.sourcesHandler)
	r.e.GET("/content/:contentType/:slug", r.contentHandler, auth.RequireTier(r.jwt, auth.ContentTypeParam))
}

type SourcesResponse struct {
	Sources []source.Source `json:"sources"`
}

// sourcesHandler godoc
// @Summary List content sources
// @Tags content
// @Produce json
// @Success 200 {object} SourcesResponse
// @Router /sources [get]
func (r *ContentRouter) sourcesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, SourcesResponse{Sources: r.registry.All()})
}

// contentHandler godoc
// @Summary Get one record by slug
// @Description VIP content types require a bearer token with tier=vip.
// @Tags content
// @Produce json
// @Param contentType path string true "Source key"
// @Param slug path string true "Record slug"
// @Security BearerAuth
// @Success 200 {object} domain.ContentRecord
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /content/{contentType}/{slug} [get]
func (r *ContentRouter) contentHandler(c echo.Context) error {
	ct := domain.ParseContentType(c.Param("contentType"))
	src, ok := r.registry.Get(ct)
	if !ok {
		return fmt.Errorf("content type %q: %w", ct, apperr.ErrNotFound)
	}

	rec, err := r.reader.FindBySlug(c.Request().Context(), src.Table, c.Param("slug"))
	if err != nil {
		return err
	}
	rec.ContentType = string(src.Key)
	if claims, ok := auth.GetClaims(c); ok {
		slog.Debug("Serving VIP content", "subject", claims.Subject, "contentType", src.Key, "slug", rec.Slug)
	}
	return c.JSON(http.StatusOK, rec)
}
