package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/domain"
)

const claimsKey = "auth.claims"

// AccessTokenParser verifies access tokens.
type AccessTokenParser interface {
	ParseAccess(token string) (domain.Claims, error)
}

// Auth validates the bearer access token and injects its claims into context.
func Auth(tokens AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.ParseAccess(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetClaims(c, claims)
			return next(c)
		}
	}
}

// SetClaims stores claims on the request context.
func SetClaims(c echo.Context, claims domain.Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(domain.Claims)
	return claims, ok
}
