// Package blob stores uploaded bytes under bucket/key names on local disk
// and hands out public URLs for them.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Errors returned for bad names and missing objects.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid bucket or key")
)

// Object is the metadata kept next to every stored blob.
type Object struct {
	Bucket       string    `json:"bucket"`
	Key          string    `json:"key"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	SHA256       string    `json:"sha256"`
	LastModified time.Time `json:"last_modified"`
}

// DiskStore keeps objects at <root>/<bucket>/<key> and metadata at
// <root>/.meta/<bucket>/<key>.json.
type DiskStore struct {
	root          string
	publicBaseURL string
}

// NewDiskStore returns a store rooted at root. Public URLs are built as
// <publicBaseURL>/<bucket>/<key>.
func NewDiskStore(root, publicBaseURL string) *DiskStore {
	return &DiskStore{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Put streams r into bucket/key. The object only becomes visible once fully
// written; a failed or cancelled copy leaves nothing behind.
func (s *DiskStore) Put(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	if err := validateName(bucket, key); err != nil {
		return err
	}

	bucketDir := filepath.Join(s.root, bucket)
	destination := filepath.Join(bucketDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("creating bucket directory: %w", err)
	}

	tmp, err := os.CreateTemp(bucketDir, ".pending-")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), contextReader{ctx: ctx, r: r})
	if err != nil {
		tmp.Close()
		return fmt.Errorf("storing %s/%s: %w", bucket, key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("committing %s/%s: %w", bucket, key, err)
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(key))
	}
	err = s.writeMeta(Object{
		Bucket:       bucket,
		Key:          key,
		ContentType:  contentType,
		Size:         n,
		SHA256:       hex.EncodeToString(h.Sum(nil)),
		LastModified: time.Now().UTC(),
	})
	if err != nil {
		// A failed Put must not leave a visible object behind.
		if delErr := s.Delete(ctx, bucket, key); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}
	return nil
}

// Open returns the stored bytes and metadata. The caller closes the file.
func (s *DiskStore) Open(_ context.Context, bucket, key string) (*os.File, Object, error) {
	if err := validateName(bucket, key); err != nil {
		return nil, Object{}, err
	}

	f, err := os.Open(filepath.Join(s.root, bucket, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrObjectNotFound
		}
		return nil, Object{}, err
	}

	obj, err := s.readMeta(bucket, key)
	if err != nil {
		// Objects copied in by hand have no metadata; describe them from the file.
		stat, statErr := f.Stat()
		if statErr != nil {
			f.Close()
			return nil, Object{}, statErr
		}
		obj = Object{
			Bucket:       bucket,
			Key:          key,
			ContentType:  mime.TypeByExtension(path.Ext(key)),
			Size:         stat.Size(),
			LastModified: stat.ModTime(),
		}
	}
	return f, obj, nil
}

// Delete removes bucket/key if present.
func (s *DiskStore) Delete(_ context.Context, bucket, key string) error {
	if err := validateName(bucket, key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, bucket, filepath.FromSlash(key))); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.metaPath(bucket, key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicURL returns the URL under which bucket/key is served.
func (s *DiskStore) PublicURL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBaseURL + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func (s *DiskStore) metaPath(bucket, key string) string {
	return filepath.Join(s.root, ".meta", bucket, filepath.FromSlash(key)+".json")
}

func (s *DiskStore) writeMeta(obj Object) error {
	p := s.metaPath(obj.Bucket, obj.Key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *DiskStore) readMeta(bucket, key string) (Object, error) {
	data, err := os.ReadFile(s.metaPath(bucket, key))
	if err != nil {
		return Object{}, err
	}
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return Object{}, err
	}
	return obj, nil
}

// validateName rejects empty, absolute, traversing or hidden path segments.
func validateName(bucket, key string) error {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || strings.HasPrefix(bucket, ".") {
		return fmt.Errorf("%w: bucket %q", ErrInvalidKey, bucket)
	}
	if key == "" || strings.Contains(key, `\`) {
		return fmt.Errorf("%w: key %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || strings.HasPrefix(seg, ".") {
			return fmt.Errorf("%w: key %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
