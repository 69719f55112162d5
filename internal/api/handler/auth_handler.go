package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/api/metrics"
	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the admin credentials for a bearer token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Admin username"
// @Param        password  formData  string  true  "Admin password"
// @Success      200       {object}  tokenResponse
// @Failure      401       {object}  map[string]string
// @Failure      422       {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresIn:   res.ExpiresIn,
	})
}

// Me reports the identity behind the bearer token.
//
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	username, err := adminFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Username: username, Status: "authenticated"})
}

// HashPassword is a development helper that returns a bcrypt hash suitable
// for ADMIN_PASSWORD_HASH. It is not routed in production.
//
// @Summary      Hash a password (development only)
// @Tags         auth
// @Produce      json
// @Param        password  query     string  true  "Plain-text password"
// @Success      200       {object}  hashResponse
// @Router       /api/auth/hashpw [get]
func (h *AuthHandler) HashPassword(c echo.Context) error {
	var req hashRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hashResponse{Hash: hash})
}
