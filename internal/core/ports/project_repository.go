package ports

import (
	"context"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// ProjectQuery carries the filters a ProjectRepository pushes into the store.
// Tag filtering is not part of it: it is applied by the service after the fetch.
type ProjectQuery struct {
	Featured *bool // nil = no filter
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// List returns projects ordered by order ascending, then by insertion.
	List(ctx context.Context, q ProjectQuery) ([]*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// Create inserts p and returns the stored row with id and timestamps
	// assigned by the store.
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// Update applies patch to the row and returns it, or
	// domain.ErrProjectNotFound when no row matched.
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	// Delete returns domain.ErrProjectNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
