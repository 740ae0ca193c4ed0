package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/portfolio/internal/domain/activity"
)

// Service validates files and hands them to the blob store.
type Service struct {
	blobs      BlobStore
	bucket     string
	policy     Policy
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates an upload pipeline writing into bucket. activities may be nil.
func NewService(blobs BlobStore, bucket string, policy Policy, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		blobs:      blobs,
		bucket:     bucket,
		policy:     policy,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// Policy returns the active validation policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// Upload validates req and writes it exactly once. Every call produces a new
// object, even for identical bytes. Failed writes are not retried.
func (s *Service) Upload(ctx context.Context, req Request) (*Asset, error) {
	contentType, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	// Nothing has been sent yet, so a cancelled request is a clean failure.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := s.newFilename(req.Filename, contentType)
	key := string(req.Kind) + "/" + filename
	body := &cappedReader{r: req.Body, remaining: s.policy.MaxBytes}

	if err := s.blobs.Put(ctx, s.bucket, key, body, contentType); err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, ErrFileTooLarge
		}
		uerr := &Error{Key: key, Indeterminate: ctx.Err() != nil, Err: err}
		s.logger.Error("upload failed", "key", key, "indeterminate", uerr.Indeterminate, "error", err)
		return nil, uerr
	}

	asset := &Asset{
		Kind:     req.Kind,
		Key:      key,
		Filename: filename,
		URL:      s.blobs.PublicURL(s.bucket, key),
		Size:     body.read,
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.ActivityEntry{
			Subject:      activity.SubjectAsset,
			SubjectID:    key,
			ActivityType: activity.TypeAssetUploaded,
			Summary:      fmt.Sprintf("uploaded %s %s", req.Kind, filename),
			CreatedAt:    s.now().UTC(),
		})
	}
	return asset, nil
}

func (s *Service) validate(req Request) (string, error) {
	if req.Body == nil {
		return "", ErrMissingFile
	}
	if !req.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}
	if req.Size > s.policy.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, req.Size, s.policy.MaxBytes)
	}
	contentType := normalizeContentType(req.ContentType)
	if !s.policy.Allows(req.Kind, contentType) {
		return "", fmt.Errorf("%w: %s for %s", ErrUnsupportedType, req.ContentType, req.Kind)
	}
	return contentType, nil
}

// newFilename returns <unix-millis>-<random>.<ext>.
func (s *Service) newFilename(original, contentType string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, extension(original, contentType))
}

func normalizeContentType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}

var typeExtensions = map[string]string{
	"image/jpeg":  ".jpg",
	"image/png":   ".png",
	"image/webp":  ".webp",
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/wave":  ".wav",
	"audio/ogg":   ".ogg",
	"audio/mp4":   ".m4a",
	"audio/m4a":   ".m4a",
	"audio/x-m4a": ".m4a",
}

// extension keeps the client's extension when it is a plain alphanumeric
// suffix and falls back to one derived from the content type.
func extension(original, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > 1 && len(ext) <= 10 && isAlnum(ext[1:]) {
		return ext
	}
	return typeExtensions[contentType]
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// cappedReader fails with ErrFileTooLarge once more than remaining bytes are read.
type cappedReader struct {
	r         io.Reader
	remaining int64
	read      int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.read += int64(n)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
