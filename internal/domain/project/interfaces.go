package project

import (
	"context"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, limit int) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository records content changes.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
