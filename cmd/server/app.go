package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/portfolio/internal/blob"
	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/domain/upload"
	"github.com/rpggio/portfolio/internal/store"
	"gopkg.in/natefinch/lumberjack.v2"
)

// app holds the opened store and the services built on it.
type app struct {
	db    *store.DB
	blobs *blob.DiskStore

	// Repositories are exposed for reads that must not soft-fail.
	projectRepo project.Repository
	beatRepo    beat.Repository
	settingRepo setting.Repository

	projects *project.Service
	beats    *beat.Service
	settings *setting.Service
	admin    *admin.Service
	uploads  *upload.Service
	activity *activity.Service
}

func openApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	if cfg.DB.Driver == "sqlite" {
		if err := ensureDBDir(cfg.DB.DSN); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
	}

	db, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	projectRepo := store.NewProjectRepository(db)
	beatRepo := store.NewBeatRepository(db)
	settingRepo := store.NewSettingRepository(db)
	adminRepo := store.NewAdminRepository(db)
	activityRepo := store.NewActivityRepository(db)

	blobs := blob.NewDiskStore(cfg.Storage.Root, cfg.Storage.PublicBaseURL)

	return &app{
		db:          db,
		blobs:       blobs,
		projectRepo: projectRepo,
		beatRepo:    beatRepo,
		settingRepo: settingRepo,
		projects:    project.NewService(projectRepo, activityRepo, logger),
		beats:       beat.NewService(beatRepo, activityRepo, logger),
		settings:    setting.NewService(settingRepo, activityRepo, logger),
		admin:       admin.NewService(adminRepo, logger),
		uploads:     upload.NewService(blobs, cfg.Storage.Bucket, upload.DefaultPolicy(cfg.Upload.MaxBytes), activityRepo, logger),
		activity:    activity.NewService(activityRepo, logger),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// newLogger writes to base and, when configured, a rotated log file.
func newLogger(cfg config.LogConfig, base io.Writer) *slog.Logger {
	writer := base
	if cfg.File != "" {
		writer = io.MultiWriter(base, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		})
	}

	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(writer, opts))
	}
	return slog.New(slog.NewTextHandler(writer, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDBDir(path string) error {
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
