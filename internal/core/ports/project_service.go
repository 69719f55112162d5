package ports

import (
	"context"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// ProjectFilter carries the public list query parameters.
type ProjectFilter struct {
	Featured *bool  // optional
	Tag      string // optional, matched after the fetch
}

// ProjectInput carries all data needed to create a project.
type ProjectInput struct {
	Title       string
	Description string
	Tags        []string
	ImageURL    *string
	LiveURL     *string
	GithubURL   *string
	Featured    bool
	Order       int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, input ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
