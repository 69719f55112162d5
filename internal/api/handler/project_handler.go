package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/api/metrics"
	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        featured  query     bool    false  "Only featured (true) or non-featured (false) projects"
// @Param        tag       query     string  false  "Only projects carrying this tag"
// @Success      200       {array}   domain.Project
// @Failure      422       {object}  map[string]string
// @Router       /api/projects/ [get]
func (h *ProjectHandler) List(c echo.Context) error {
	filter := ports.ProjectFilter{Tag: c.QueryParam("tag")}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "featured must be a boolean")
		}
		filter.Featured = &featured
	}

	projects, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/projects/ [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), ports.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		LiveURL:     req.LiveURL,
		GithubURL:   req.GithubURL,
		Featured:    req.Featured,
		Order:       req.Order,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("project", "create").Inc()
	return c.JSON(http.StatusCreated, project)
}

// Update handles PATCH /api/projects/:id.
//
// @Summary      Partially update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		LiveURL:     req.LiveURL,
		GithubURL:   req.GithubURL,
		Featured:    req.Featured,
		Order:       req.Order,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("project", "update").Inc()
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("project", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
