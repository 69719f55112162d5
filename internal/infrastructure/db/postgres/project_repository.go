package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

const projectColumns = `id::text, title, description, tags, image_url, live_url, github_url, featured, "order", created_at, updated_at`

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns projects by display order, oldest first within an order value.
func (r *ProjectRepository) List(ctx context.Context, q ports.ProjectQuery) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if q.Featured != nil {
		query += ` WHERE featured = $1`
		args = append(args, *q.Featured)
	}
	query += ` ORDER BY "order" ASC, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, projectLookupErr(err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`INSERT INTO projects (title, description, tags, image_url, live_url, github_url, featured, "order")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+projectColumns,
		p.Title, p.Description, p.Tags, p.ImageURL, p.LiveURL, p.GithubURL, p.Featured, p.Order,
	)
	created, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectCreateFailed
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// Update writes only the fields set in patch and stamps updated_at.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Tags != nil {
		set.add("tags", *patch.Tags)
	}
	if patch.ImageURL != nil {
		set.add("image_url", *patch.ImageURL)
	}
	if patch.LiveURL != nil {
		set.add("live_url", *patch.LiveURL)
	}
	if patch.GithubURL != nil {
		set.add("github_url", *patch.GithubURL)
	}
	if patch.Featured != nil {
		set.add("featured", *patch.Featured)
	}
	if patch.Order != nil {
		set.add(`"order"`, *patch.Order)
	}
	if set.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	query, args := set.build("projects", id, projectColumns)
	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, projectLookupErr(err)
	}
	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	p := &domain.Project{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Tags,
		&p.ImageURL,
		&p.LiveURL,
		&p.GithubURL,
		&p.Featured,
		&p.Order,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// projectLookupErr maps "no row" and malformed ids onto ErrProjectNotFound.
func projectLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidTextRepr) {
		return domain.ErrProjectNotFound
	}
	return fmt.Errorf("project lookup: %w", err)
}

// setClause accumulates "col = $n" assignments for a partial UPDATE.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

func (s *setClause) build(table, id, returning string) (string, []any) {
	args := append(s.args, id)
	query := fmt.Sprintf(
		`UPDATE %s SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		table, strings.Join(s.cols, ", "), len(args), returning,
	)
	return query, args
}
