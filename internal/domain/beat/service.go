package beat

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

// Service handles beat operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new beat service. activities may be nil.
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

// CreateRequest defines beat creation inputs.
type CreateRequest struct {
	Title         string
	Description   string
	AudioURL      string
	CoverImageURL string
	Genre         string
	Duration      *int
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	ID            int64
	Title         *string
	Description   *string
	AudioURL      *string
	CoverImageURL *string
	Genre         *string
	Duration      *int
}

// ListOptions filters List. Genre must match exactly.
type ListOptions struct {
	Limit int
	Genre string
}

// Create creates a new beat.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Beat, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	b := &Beat{
		Title:         req.Title,
		Description:   req.Description,
		AudioURL:      req.AudioURL,
		CoverImageURL: req.CoverImageURL,
		Genre:         req.Genre,
		Duration:      req.Duration,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating beat: %w", err)
	}

	s.logActivity(ctx, b.ID, activity.TypeCreated, fmt.Sprintf("created beat %q", b.Title))
	return b, nil
}

// Get fetches a beat by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Beat, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBeatNotFound
		}
		return nil, fmt.Errorf("getting beat: %w", err)
	}
	return b, nil
}

// List returns beats newest first, degrading to an empty list when the store fails.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Beat, error) {
	beats, err := s.repo.List(ctx, opts.Limit)
	if err != nil {
		s.logger.Warn("beat store unavailable, returning empty list", "error", err)
		return []Beat{}, nil
	}

	filtered := make([]Beat, 0, len(beats))
	for _, b := range beats {
		if opts.Genre == "" || b.Genre == opts.Genre {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Update overwrites the supplied fields of an existing beat.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Beat, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.AudioURL != nil {
		b.AudioURL = *req.AudioURL
	}
	if req.CoverImageURL != nil {
		b.CoverImageURL = *req.CoverImageURL
	}
	if req.Genre != nil {
		b.Genre = *req.Genre
	}
	if req.Duration != nil {
		b.Duration = req.Duration
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBeatNotFound
		}
		return nil, fmt.Errorf("updating beat: %w", err)
	}

	s.logActivity(ctx, b.ID, activity.TypeUpdated, fmt.Sprintf("updated beat %q", b.Title))
	return b, nil
}

// Delete removes a beat if present.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting beat: %w", err)
	}
	s.logActivity(ctx, id, activity.TypeDeleted, fmt.Sprintf("deleted beat %d", id))
	return nil
}

func (s *Service) logActivity(ctx context.Context, id int64, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.ActivityEntry{
		Subject:      activity.SubjectBeat,
		SubjectID:    strconv.FormatInt(id, 10),
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    s.now(),
	})
}
