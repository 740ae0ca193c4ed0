package setting

import (
	"context"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// Repository provides persistence for site settings.
type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	// Upsert writes every setting atomically, keyed by Key.
	Upsert(ctx context.Context, settings []Setting) error
}

// ActivityRepository records content changes.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
