package ports

import (
	"context"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]*domain.Post, error)
	// FindPublishedBySlug returns domain.ErrPostNotFound for drafts too.
	FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Create returns domain.ErrSlugConflict when the unique slug index rejects the row.
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by backing stores that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
