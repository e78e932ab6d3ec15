package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// pathID parses the :id route parameter. Anything but a positive integer is
// rejected with 400 before the service is called.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}

// listFilter reads items_per_page, page and search from the query string.
// Unparsable numbers are left at zero so the listing defaults apply.
func listFilter(c echo.Context) ports.ListFilter {
	perPage, _ := strconv.Atoi(c.QueryParam("items_per_page"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return ports.ListFilter{
		ItemsPerPage: perPage,
		Page:         page,
		Search:       c.QueryParam("search"),
	}
}

// ctxClaims returns the claims injected by the Auth middleware.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validationf("invalid payload")
	}
	return c.Validate(req)
}
