package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/folio/portfolio-api/internal/core/domain"
)

const postColumns = `id::text, title, slug, excerpt, content, tags, cover_url, published, created_at, updated_at`

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE published = TRUE ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 AND published = TRUE`, slug)
	p, err := scanPost(row)
	if err != nil {
		return nil, postLookupErr(err)
	}
	return p, nil
}

// SlugExists checks drafts as well as published posts.
func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1)`, slug,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("slug lookup: %w", err)
	}
	return exists, nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, content, tags, cover_url, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+postColumns,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Tags, p.CoverURL, p.Published,
	)
	created, err := scanPost(row)
	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil, domain.ErrPostCreateFailed
	case hasCode(err, codeUniqueViolation):
		return nil, domain.ErrSlugConflict
	default:
		return nil, fmt.Errorf("create post: %w", err)
	}
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Slug != nil {
		set.add("slug", *patch.Slug)
	}
	if patch.Excerpt != nil {
		set.add("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		set.add("content", *patch.Content)
	}
	if patch.Tags != nil {
		set.add("tags", *patch.Tags)
	}
	if patch.CoverURL != nil {
		set.add("cover_url", *patch.CoverURL)
	}
	if patch.Published != nil {
		set.add("published", *patch.Published)
	}
	if set.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	query, args := set.build("blog_posts", id, postColumns)
	p, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return nil, domain.ErrSlugConflict
		}
		return nil, postLookupErr(err)
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	p := &domain.Post{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Excerpt,
		&p.Content,
		&p.Tags,
		&p.CoverURL,
		&p.Published,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func postLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidTextRepr) {
		return domain.ErrPostNotFound
	}
	return fmt.Errorf("post lookup: %w", err)
}
