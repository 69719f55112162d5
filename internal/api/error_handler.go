package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Adds a Bearer challenge to every 401.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, domain.ErrInvalidTokenPayload):
		return http.StatusUnauthorized, "Invalid token payload"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest, "No fields to update"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "Post not found"
	case errors.Is(err, domain.ErrSlugConflict):
		return http.StatusConflict, "Slug already exists"
	case errors.Is(err, domain.ErrProjectCreateFailed):
		return http.StatusInternalServerError, "Failed to create project"
	case errors.Is(err, domain.ErrPostCreateFailed):
		return http.StatusInternalServerError, "Failed to create post"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
