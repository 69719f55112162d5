package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// ContextKeyUsername is the echo context key holding the authenticated admin.
const ContextKeyUsername = "username"

type usernameKey struct{}

// Require parses an "Authorization: Bearer <token>" header value and returns
// the verified identity. A missing or malformed header yields
// domain.ErrNotAuthenticated.
func Require(verifier ports.TokenVerifier, header string) (*domain.Identity, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return verifier.Verify(token)
}

// Auth guards a route with a bearer token. On success the username is stored
// in the echo context and in the request context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Require(verifier, c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			c.Set(ContextKeyUsername, id.Username)
			req := c.Request()
			c.SetRequest(req.WithContext(WithUsername(req.Context(), id.Username)))

			return next(c)
		}
	}
}

// WithUsername returns a copy of ctx carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// UsernameFrom returns the username stored by Auth, if any.
func UsernameFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey{}).(string)
	return username, ok && username != ""
}
