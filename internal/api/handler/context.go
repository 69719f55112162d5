package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/api/middleware"
	"github.com/folio/portfolio-api/internal/core/domain"
)

// bindAndValidate binds the request into req (path, query or body depending
// on the method) and runs struct validation. Bind failures are 400,
// validation failures 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}

// adminFrom returns the username the Auth middleware attached to the request.
// Its absence means the route was registered without the guard.
func adminFrom(c echo.Context) (string, error) {
	if username, ok := middleware.UsernameFrom(c.Request().Context()); ok {
		return username, nil
	}
	if username, ok := c.Get(middleware.ContextKeyUsername).(string); ok && username != "" {
		return username, nil
	}
	return "", domain.ErrNotAuthenticated
}
