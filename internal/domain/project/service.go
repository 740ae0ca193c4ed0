package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new project service. activities may be nil.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		activities: activities,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title        string
	Description  string
	ImageURL     string
	ProjectURL   string
	GithubURL    string
	Technologies string
	Status       Status
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	ID           int64
	Title        *string
	Description  *string
	ImageURL     *string
	ProjectURL   *string
	GithubURL    *string
	Technologies *string
	Status       *Status
}

// ListOptions filters List. Limit is applied by the store, Status afterwards.
type ListOptions struct {
	Limit  int
	Status Status
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusCompleted
	}

	proj := &Project{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
		Technologies: req.Technologies,
		Status:       status,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logActivity(ctx, proj.ID, activity.TypeCreated, fmt.Sprintf("created project %q", proj.Title))
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns projects newest first. A failing store yields an empty list
// so public pages keep rendering.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	projects, err := s.repo.List(ctx, opts.Limit)
	if err != nil {
		s.logger.Warn("project store unavailable, returning empty list", "error", err)
		return []Project{}, nil
	}

	if opts.Status == "" {
		if projects == nil {
			projects = []Project{}
		}
		return projects, nil
	}

	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == opts.Status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Update overwrites the supplied fields of an existing project.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	proj, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	applyString(&proj.Title, req.Title)
	applyString(&proj.Description, req.Description)
	applyString(&proj.ImageURL, req.ImageURL)
	applyString(&proj.ProjectURL, req.ProjectURL)
	applyString(&proj.GithubURL, req.GithubURL)
	applyString(&proj.Technologies, req.Technologies)
	if req.Status != nil {
		proj.Status = *req.Status
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.logActivity(ctx, proj.ID, activity.TypeUpdated, fmt.Sprintf("updated project %q", proj.Title))
	return proj, nil
}

// Delete removes a project if present. Deleting a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logActivity(ctx, id, activity.TypeDeleted, fmt.Sprintf("deleted project %d", id))
	return nil
}

func (s *Service) logActivity(ctx context.Context, id int64, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.ActivityEntry{
		Subject:      activity.SubjectProject,
		SubjectID:    strconv.FormatInt(id, 10),
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    s.now(),
	})
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
