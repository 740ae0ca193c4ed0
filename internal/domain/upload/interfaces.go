package upload

import (
	"context"
	"io"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// BlobStore writes objects and resolves their public URLs.
type BlobStore interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, contentType string) error
	PublicURL(bucket, key string) string
}

// ActivityRepository records stored assets.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
