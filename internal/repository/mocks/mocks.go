package mocks

import (
	"context"
	"io"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, limit int) ([]project.Project, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// BeatRepository is a mock for beat.Repository.
type BeatRepository struct {
	mock.Mock
}

func (m *BeatRepository) Create(ctx context.Context, b *beat.Beat) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BeatRepository) Get(ctx context.Context, id int64) (*beat.Beat, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*beat.Beat); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) List(ctx context.Context, limit int) ([]beat.Beat, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]beat.Beat); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) Update(ctx context.Context, b *beat.Beat) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BeatRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SettingRepository is a mock for setting.Repository.
type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]setting.Setting); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingRepository) Upsert(ctx context.Context, settings []setting.Setting) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// AdminRepository is a mock for admin.Repository.
type AdminRepository struct {
	mock.Mock
}

func (m *AdminRepository) GetByUsername(ctx context.Context, username string) (*admin.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*admin.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AdminRepository) Upsert(ctx context.Context, user *admin.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// BlobStore is a mock for upload.BlobStore. The body is drained before the
// mocked result is returned so the caller's byte accounting runs.
type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Put(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	args := m.Called(ctx, bucket, key, r, contentType)
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	return args.Error(0)
}

func (m *BlobStore) PublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}
