package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	budget      DOUBLE PRECISION NOT NULL DEFAULT 0,
	image_url   TEXT NOT NULL DEFAULT '',
	is_active   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS projects_name_idx ON projects (name, id);
`

// Sort orders accepted by ListPage.
const (
	SortName = "name"
	SortID   = "id"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// EnsureSchema creates the projects table when it does not exist yet.
func (r *ProjectRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure projects schema: %w", err)
	}
	return nil
}

// ListPage returns one page of projects. Pages are 1-based; a page past the
// end returns an empty slice.
func (r *ProjectRepository) ListPage(ctx context.Context, page, limit int, sort string) ([]domain.Project, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	// sort is whitelisted, never interpolated from user input
	q := `
SELECT id, name, description, budget, image_url, is_active
FROM projects
ORDER BY name ASC, id ASC
LIMIT $1 OFFSET $2;
`
	if sort == SortID {
		q = `
SELECT id, name, description, budget, image_url, is_active
FROM projects
ORDER BY id ASC
LIMIT $1 OFFSET $2;
`
	}

	rows, err := r.db.QueryContext(ctx, q, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, limit)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Budget, &p.ImageURL, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the project with the given id.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
SELECT id, name, description, budget, image_url, is_active
FROM projects
WHERE id = $1;
`
	var p domain.Project
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Budget, &p.ImageURL, &p.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project and returns it with its assigned id.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name required")
	}

	const q = `
INSERT INTO projects (name, description, budget, image_url, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, description, budget, image_url, is_active;
`
	var out domain.Project
	err := r.db.QueryRowContext(ctx, q, p.Name, p.Description, p.Budget, p.ImageURL, p.IsActive).
		Scan(&out.ID, &out.Name, &out.Description, &out.Budget, &out.ImageURL, &out.IsActive)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces every editable field of the project in one statement.
func (r *ProjectRepository) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	const q = `
UPDATE projects
SET name = $2, description = $3, budget = $4, image_url = $5, is_active = $6, updated_at = now()
WHERE id = $1
RETURNING id, name, description, budget, image_url, is_active;
`
	var out domain.Project
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Description, p.Budget, p.ImageURL, p.IsActive).
		Scan(&out.ID, &out.Name, &out.Description, &out.Budget, &out.ImageURL, &out.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Count returns the total number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM projects;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
