package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	rows      []*domain.Project
	nextID    int
	listCalls int
	lastQuery ports.ProjectQuery
	updates   int
	createNil bool  // Create returns (nil, nil), as a store that inserted nothing
	listErr   error // if set, List returns this error
}

func (r *stubProjectRepo) List(_ context.Context, q ports.ProjectQuery) ([]*domain.Project, error) {
	r.listCalls++
	r.lastQuery = q
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Project
	for _, p := range r.rows {
		if q.Featured != nil && p.Featured != *q.Featured {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range r.rows {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.createNil {
		return nil, nil
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("p-%d", r.nextID)
	clone.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, &clone)
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	r.updates++
	for _, p := range r.rows {
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Tags != nil {
			p.Tags = *patch.Tags
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		if patch.Order != nil {
			p.Order = *patch.Order
		}
		now := time.Now().UTC()
		p.UpdatedAt = &now
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.rows {
		if p.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrProjectNotFound
}

type stubPostRepo struct {
	rows      []*domain.Post
	nextID    int
	listCalls int
	updates   int
	creates   int
	createNil bool
	createErr error
	// afterList runs once the snapshot is taken, before ListPublished returns.
	afterList func()
}

// ListPublished mirrors the real stores: published only, newest first.
func (r *stubPostRepo) ListPublished(_ context.Context) ([]*domain.Post, error) {
	r.listCalls++
	var out []*domain.Post
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Published {
			clone := *r.rows[i]
			out = append(out, &clone)
		}
	}
	if r.afterList != nil {
		r.afterList()
	}
	return out, nil
}

func (r *stubPostRepo) FindPublishedBySlug(_ context.Context, slug string) (*domain.Post, error) {
	for _, p := range r.rows {
		if p.Slug == slug && p.Published {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.rows {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.createNil {
		return nil, nil
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("b-%d", r.nextID)
	clone.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, &clone)
	out := clone
	return &out, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	r.updates++
	for _, p := range r.rows {
		if p.ID != id {
			continue
		}
		if patch.Slug != nil {
			for _, other := range r.rows {
				if other.ID != id && other.Slug == *patch.Slug {
					return nil, domain.ErrSlugConflict
				}
			}
			p.Slug = *patch.Slug
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Published != nil {
			p.Published = *patch.Published
		}
		if patch.Tags != nil {
			p.Tags = *patch.Tags
		}
		now := time.Now().UTC()
		p.UpdatedAt = &now
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.rows {
		if p.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrPostNotFound
}

// memoryCache is a ListCache backed by a map, with optional failure injection.
// Like the redis adapter it keys entries by namespace generation.
type memoryCache struct {
	entries     map[string][]byte
	generations map[string]int64
	invalidated map[string]int
	failGet     bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:     make(map[string][]byte),
		generations: make(map[string]int64),
		invalidated: make(map[string]int),
	}
}

func memoryKey(namespace string, gen int64, key string) string {
	return fmt.Sprintf("%s/v%d/%s", namespace, gen, key)
}

func (c *memoryCache) Get(_ context.Context, namespace, key string) ([]byte, int64, bool, error) {
	if c.failGet {
		return nil, 0, false, errors.New("cache down")
	}
	gen := c.generations[namespace]
	v, ok := c.entries[memoryKey(namespace, gen, key)]
	return v, gen, ok, nil
}

func (c *memoryCache) Set(_ context.Context, namespace string, gen int64, key string, value []byte, _ time.Duration) error {
	c.entries[memoryKey(namespace, gen, key)] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, namespace string) error {
	c.invalidated[namespace]++
	c.generations[namespace]++
	return nil
}

func ptr[T any](v T) *T { return &v }
