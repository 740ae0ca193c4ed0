package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/repository"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, image_url, project_url, github_url, technologies, status, created_at`

// Create inserts proj and sets its ID.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (title, description, image_url, project_url, github_url, technologies, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.queryRow(ctx, query,
		proj.Title,
		proj.Description,
		nullString(proj.ImageURL),
		nullString(proj.ProjectURL),
		nullString(proj.GithubURL),
		nullString(proj.Technologies),
		proj.Status,
		proj.CreatedAt,
	).Scan(&proj.ID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.queryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns projects newest first. A non-positive limit returns all rows.
func (r *ProjectRepository) List(ctx context.Context, limit int) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// Update overwrites every mutable column of proj.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET title = ?, description = ?, image_url = ?, project_url = ?,
			github_url = ?, technologies = ?, status = ?
		WHERE id = ?
	`

	result, err := r.db.exec(ctx, query,
		proj.Title,
		proj.Description,
		nullString(proj.ImageURL),
		nullString(proj.ProjectURL),
		nullString(proj.GithubURL),
		nullString(proj.Technologies),
		proj.Status,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a project if it exists.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.exec(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var imageURL, projectURL, githubURL, technologies sql.NullString
	if err := row.Scan(
		&proj.ID,
		&proj.Title,
		&proj.Description,
		&imageURL,
		&projectURL,
		&githubURL,
		&technologies,
		&proj.Status,
		&proj.CreatedAt,
	); err != nil {
		return nil, err
	}
	proj.ImageURL = imageURL.String
	proj.ProjectURL = projectURL.String
	proj.GithubURL = githubURL.String
	proj.Technologies = technologies.String
	return &proj, nil
}
