package ports

import (
	"context"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// PostInput carries all data needed to create a post.
type PostInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Tags      []string
	CoverURL  *string
	Published bool
}

// PostService defines use-case operations for blog posts.
type PostService interface {
	List(ctx context.Context, tag string) ([]*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, input PostInput) (*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
