package store

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_Upsert(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Upsert(ctx, []setting.Setting{
		{Key: setting.KeyName, Value: "Your Name", UpdatedAt: now},
		{Key: setting.KeyEmail, Value: "contact@example.com", UpdatedAt: now},
	}))
	require.NoError(t, repo.Upsert(ctx, []setting.Setting{
		{Key: setting.KeyName, Value: "Jane Doe", UpdatedAt: now.Add(time.Minute)},
	}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	values := map[setting.Key]string{}
	for _, s := range got {
		values[s.Key] = s.Value
	}
	require.Equal(t, "Jane Doe", values[setting.KeyName])
	require.Equal(t, "contact@example.com", values[setting.KeyEmail])
}

func TestSettingRepository_UpsertIsAtomic(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON site_settings
		WHEN NEW.value = 'bad' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	err = repo.Upsert(ctx, []setting.Setting{
		{Key: setting.KeyBio, Value: "fine", UpdatedAt: time.Now().UTC()},
		{Key: setting.KeyName, Value: "bad", UpdatedAt: time.Now().UTC()},
	})
	require.Error(t, err)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
