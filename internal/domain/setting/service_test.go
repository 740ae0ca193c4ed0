package setting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	repo.On("List", ctx).Return([]setting.Setting{
		{Key: setting.KeyName, Value: "Jane"},
		{Key: setting.KeyEmail, Value: "jane@example.com"},
	}, nil)

	got, err := setting.NewService(repo, nil, nil).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, setting.Settings{setting.KeyName: "Jane", setting.KeyEmail: "jane@example.com"}, got)
}

func TestSettingService_GetSoftFails(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	repo.On("List", ctx).Return(nil, errors.New("no such table"))

	got, err := setting.NewService(repo, nil, nil).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSettingService_UpdateSortedSingleWrite(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	activities := &mocks.ActivityRepository{}

	repo.On("Upsert", ctx, mock.MatchedBy(func(rows []setting.Setting) bool {
		return len(rows) == 2 && rows[0].Key == setting.KeyBio && rows[1].Key == setting.KeyName && rows[1].Value == "Jane"
	})).Return(nil).Once()
	activities.On("Log", ctx, mock.Anything).Return(nil)

	svc := setting.NewService(repo, activities, nil)
	require.NoError(t, svc.Update(ctx, setting.Settings{setting.KeyName: "Jane", setting.KeyBio: ""}))
	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestSettingService_UpdateRejectsUnknownKey(t *testing.T) {
	repo := &mocks.SettingRepository{}
	svc := setting.NewService(repo, nil, nil)

	err := svc.Update(context.Background(), setting.Settings{setting.KeyName: "Jane", "favorite_color": "blue"})
	require.ErrorIs(t, err, setting.ErrInvalidInput)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSettingService_UpdateEmptyIsNoop(t *testing.T) {
	repo := &mocks.SettingRepository{}
	require.NoError(t, setting.NewService(repo, nil, nil).Update(context.Background(), setting.Settings{}))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
