package service

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

type ProjectService struct {
	repo     ports.ProjectRepository
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewProjectService wires the project use cases. A nil cache disables list caching.
func NewProjectService(repo ports.ProjectRepository, cache ports.ListCache, cacheTTL time.Duration, logger zerolog.Logger) *ProjectService {
	if cache == nil {
		cache = ports.NopListCache{}
	}
	return &ProjectService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns projects ordered by Order ascending. Ties keep the store's
// insertion order. The tag filter runs after the fetch.
func (s *ProjectService) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	key := projectCacheKey(filter)
	cached, gen, ok := readCachedList[*domain.Project](ctx, s.cache, s.logger, projectsNamespace, key)
	if ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx, ports.ProjectQuery{Featured: filter.Featured})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b *domain.Project) int {
		return cmp.Compare(a.Order, b.Order)
	})

	out := make([]*domain.Project, 0, len(items))
	for _, p := range items {
		if filter.Tag != "" && !p.HasTag(filter.Tag) {
			continue
		}
		p.Tags = normalizeTags(p.Tags)
		out = append(out, p)
	}

	writeCachedList(ctx, s.cache, s.cacheTTL, s.logger, projectsNamespace, gen, key, out)
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Tags = normalizeTags(p.Tags)
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, input ports.ProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		Tags:        normalizeTags(input.Tags),
		ImageURL:    input.ImageURL,
		LiveURL:     input.LiveURL,
		GithubURL:   input.GithubURL,
		Featured:    input.Featured,
		Order:       input.Order,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrProjectCreateFailed
	}
	created.Tags = normalizeTags(created.Tags)

	invalidateList(ctx, s.cache, s.logger, projectsNamespace)
	s.logger.Info().Str("project_id", created.ID).Str("title", created.Title).Msg("project created")
	return created, nil
}

// Update applies a partial update. An empty patch is rejected before the
// store is touched.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
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

	invalidateList(ctx, s.cache, s.logger, projectsNamespace)
	s.logger.Info().Str("project_id", id).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateList(ctx, s.cache, s.logger, projectsNamespace)
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func projectCacheKey(f ports.ProjectFilter) string {
	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return "featured=" + featured + "|tag=" + f.Tag
}
