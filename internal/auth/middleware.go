package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/labstack/echo/v4"
)

const claimsKey = "auth.claims"

// TierResolver tells the gate which tier a request targets.
type TierResolver func(c echo.Context) domain.Tier

// ContentTypeParam resolves the tier from the :contentType path parameter.
func ContentTypeParam(c echo.Context) domain.Tier {
	return domain.ParseContentType(c.Param("contentType")).Tier()
}

// RequireTier lets free-tier requests through and demands a bearer token with
// tier=vip for everything else.
func RequireTier(m *JWTManager, resolve TierResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if resolve(c) != domain.TierVip {
				return next(c)
			}

			tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			claims, err := m.ValidateToken(tokenString)
			if err != nil {
				slog.Debug("Rejected bearer token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Tier != domain.TierVip {
				return echo.NewHTTPError(http.StatusForbidden, "vip subscription required")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func GetClaims(c echo.Context) (*Claims, bool) {
	cl, ok := c.Get(claimsKey).(*Claims)
	return cl, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
