package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/folio/portfolio-api/internal/api/handler"
	"github.com/folio/portfolio-api/internal/api/middleware"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// RouterConfig holds the HTTP-surface switches derived from configuration.
type RouterConfig struct {
	AllowedOrigins []string
	// ExposeHashPassword routes GET /api/auth/hashpw. Never set in production.
	ExposeHashPassword bool
	EnableSwagger      bool
	// Registry receives the HTTP metrics; nil means the prometheus default.
	Registry *prometheus.Registry
}

// Dependencies are the use cases the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenVerifier
	Projects ports.ProjectService
	Posts    ports.PostService
	// Checks are pinged by GET /health/ready, keyed by dependency name.
	Checks map[string]ports.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portfolio",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	requireAdmin := middleware.Auth(deps.Tokens)

	// --- Health & tooling (no auth required) ---
	health := handler.NewHealthHandler(deps.Checks)
	e.GET("/", health.Root)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	if cfg.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAdmin)
	if cfg.ExposeHashPassword {
		auth.GET("/hashpw", authHandler.HashPassword)
	}

	// --- Projects ---
	projectHandler := handler.NewProjectHandler(deps.Projects)
	projects := e.Group("/api/projects")
	collection(projects, http.MethodGet, projectHandler.List)
	collection(projects, http.MethodPost, projectHandler.Create, requireAdmin)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update, requireAdmin)
	projects.DELETE("/:id", projectHandler.Delete, requireAdmin)

	// --- Blog ---
	postHandler := handler.NewPostHandler(deps.Posts)
	blog := e.Group("/api/blog")
	collection(blog, http.MethodGet, postHandler.List)
	collection(blog, http.MethodPost, postHandler.Create, requireAdmin)
	blog.GET("/:slug", postHandler.Get)
	blog.PATCH("/:post_id", postHandler.Update, requireAdmin)
	blog.DELETE("/:post_id", postHandler.Delete, requireAdmin)

	return e
}

// collection registers a collection route with and without the trailing slash.
func collection(g *echo.Group, method string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.Add(method, "", h, m...)
	g.Add(method, "/", h, m...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
