package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testApp(t *testing.T) *app {
	t.Helper()

	cfg := config.Default()
	cfg.DB.DSN = ":memory:"
	cfg.Storage.Root = t.TempDir()

	a, err := openApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSeedSampleData_Idempotent(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, seedSampleData(ctx, a, logger))
	require.NoError(t, seedSampleData(ctx, a, logger))

	projects, err := a.projects.List(ctx, project.ListOptions{})
	require.NoError(t, err)
	require.Len(t, projects, len(sampleProjects))

	beats, err := a.beats.List(ctx, beat.ListOptions{Genre: "trap"})
	require.NoError(t, err)
	require.Len(t, beats, 1)
	require.Equal(t, "Urban Trap", beats[0].Title)
	require.Equal(t, 200, *beats[0].Duration)

	settings, err := a.settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, setting.Defaults(), settings)
}

func TestSeedSampleData_KeepsExistingSettings(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	require.NoError(t, a.settings.Update(ctx, setting.Settings{setting.KeyName: "Ada"}))
	require.NoError(t, seedSampleData(ctx, a, slog.New(slog.NewTextHandler(io.Discard, nil))))

	settings, err := a.settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", settings[setting.KeyName])
	require.Equal(t, setting.Defaults()[setting.KeyEmail], settings[setting.KeyEmail])
}

func TestSeedSampleData_StopsOnSettingsReadFailure(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	settings := &mocks.SettingRepository{}
	settings.On("List", mock.Anything).Return(nil, errors.New("database is locked"))
	a.settingRepo = settings
	a.settings = setting.NewService(settings, nil, nil)

	err := seedSampleData(ctx, a, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "database is locked")
	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)

	projects, err := a.projectRepo.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestRootCommandRunsServe(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORTFOLIO_DB_DRIVER", "mysql")

	root := newRootCommand()
	root.SetArgs([]string{})
	err := root.Execute()
	require.ErrorContains(t, err, "config error")
	require.ErrorContains(t, err, "invalid db.driver")
}

func TestConfigGenerate(t *testing.T) {
	dir := t.TempDir()

	cmd := newConfigGenerateCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--output", dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "portfolio.yaml"))
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Equal(t, config.Default(), cfg)

	out.Reset()
	cmd.SetArgs([]string{"--output", dir})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Skipping")
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("s3cret\nignored"))
	require.NoError(t, err)
	require.Equal(t, "s3cret", pw)

	_, err = readPassword(strings.NewReader("\n"))
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.log")
	var stdout bytes.Buffer

	logger := newLogger(config.LogConfig{Level: "info", JSON: true, File: path}, &stdout)
	logger.Info("hello", "k", "v")

	require.Contains(t, stdout.String(), `"msg":"hello"`)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"k":"v"`)
}
