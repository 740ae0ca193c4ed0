package setting

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// Service reads and upserts site settings.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new settings service. activities may be nil.
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

// Get returns all stored settings. Store failures yield an empty map.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("settings store unavailable, returning empty settings", "error", err)
		return Settings{}, nil
	}

	out := make(Settings, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Update upserts every key in values. Unknown keys reject the whole payload.
func (s *Service) Update(ctx context.Context, values Settings) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !k.Known() {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidInput, k)
		}
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	now := s.now()
	rows := make([]Setting, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Setting{Key: Key(k), Value: values[Key(k)], UpdatedAt: now})
	}

	if err := s.repo.Upsert(ctx, rows); err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.ActivityEntry{
			Subject:      activity.SubjectSetting,
			ActivityType: activity.TypeSettingsUpdated,
			Summary:      "updated " + strings.Join(keys, ", "),
			CreatedAt:    now,
		})
	}
	return nil
}
