package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/api/metrics"
	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// PostHandler handles HTTP requests for blog posts. Public reads only ever
// see published posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/blog.
//
// @Summary      List published posts
// @Tags         blog
// @Produce      json
// @Param        tag  query     string  false  "Only posts carrying this tag"
// @Success      200  {array}   domain.Post
// @Router       /api/blog/ [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context(), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/blog/:slug.
//
// @Summary      Get a published post by slug
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  map[string]string
// @Router       /api/blog/{slug} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /api/blog.
//
// @Summary      Create a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/blog/ [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), ports.PostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("post", "create").Inc()
	return c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /api/blog/:post_id.
//
// @Summary      Partially update a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string             true  "Post id"
// @Param        body     body      updatePostRequest  true  "Fields to change"
// @Success      200      {object}  domain.Post
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /api/blog/{post_id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("post_id"), domain.PostPatch{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("post", "update").Inc()
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/blog/:post_id.
//
// @Summary      Delete a post
// @Tags         blog
// @Security     BearerAuth
// @Param        post_id  path  string  true  "Post id"
// @Success      204
// @Failure      404      {object}  map[string]string
// @Router       /api/blog/{post_id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("post_id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("post", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
