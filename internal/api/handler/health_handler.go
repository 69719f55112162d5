package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/core/ports"
)

const rootMessage = "Portfolio API v2 is running 🚀"

// HealthHandler serves the root banner and the liveness/readiness checks.
type HealthHandler struct {
	checks map[string]ports.Pinger
}

// NewHealthHandler takes the named dependencies the readiness check pings.
func NewHealthHandler(checks map[string]ports.Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Root handles GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{Status: "ok", Message: rootMessage})
}

// Liveness handles GET /health; it only confirms the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]dependencyStatus, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
		CheckedAt:    time.Now().UTC(),
	})
}
