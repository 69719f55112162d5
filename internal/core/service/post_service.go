package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

type PostService struct {
	repo     ports.PostRepository
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewPostService wires the blog use cases. A nil cache disables list caching.
func NewPostService(repo ports.PostRepository, cache ports.ListCache, cacheTTL time.Duration, logger zerolog.Logger) *PostService {
	if cache == nil {
		cache = ports.NopListCache{}
	}
	return &PostService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns published posts, newest first, optionally narrowed to one tag.
func (s *PostService) List(ctx context.Context, tag string) ([]*domain.Post, error) {
	key := "tag=" + tag
	cached, gen, ok := readCachedList[*domain.Post](ctx, s.cache, s.logger, postsNamespace, key)
	if ok {
		return cached, nil
	}

	items, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Post, 0, len(items))
	for _, p := range items {
		if !p.Published {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		p.Tags = normalizeTags(p.Tags)
		out = append(out, p)
	}

	writeCachedList(ctx, s.cache, s.cacheTTL, s.logger, postsNamespace, gen, key, out)
	return out, nil
}

// GetBySlug returns a published post. Drafts are reported as not found.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, domain.ErrPostNotFound
	}
	p.Tags = normalizeTags(p.Tags)
	return p, nil
}

// Create checks the slug before inserting. A concurrent insert of the same
// slug still surfaces as domain.ErrSlugConflict from the store.
func (s *PostService) Create(ctx context.Context, input ports.PostInput) (*domain.Post, error) {
	exists, err := s.repo.SlugExists(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSlugConflict
	}

	post := &domain.Post{
		Title:     input.Title,
		Slug:      input.Slug,
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		Tags:      normalizeTags(input.Tags),
		CoverURL:  input.CoverURL,
		Published: input.Published,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrPostCreateFailed
	}
	created.Tags = normalizeTags(created.Tags)

	invalidateList(ctx, s.cache, s.logger, postsNamespace)
	s.logger.Info().Str("post_id", created.ID).Str("slug", created.Slug).Bool("published", created.Published).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}
	if patch.Tags != nil {
		tags := normalizeTags(*patch.Tags)
		patch.Tags = &tags
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	updated.Tags = normalizeTags(updated.Tags)

	invalidateList(ctx, s.cache, s.logger, postsNamespace)
	s.logger.Info().Str("post_id", id).Msg("post updated")
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateList(ctx, s.cache, s.logger, postsNamespace)
	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}
