package beat

import (
	"context"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// Repository provides persistence for beats.
type Repository interface {
	Create(ctx context.Context, b *Beat) error
	Get(ctx context.Context, id int64) (*Beat, error)
	List(ctx context.Context, limit int) ([]Beat, error)
	Update(ctx context.Context, b *Beat) error
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository records content changes.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
