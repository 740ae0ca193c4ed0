// Package testserver runs the full HTTP stack over an in-memory database and a
// temporary blob directory.
package testserver

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/portfolio/internal/blob"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/domain/upload"
	"github.com/rpggio/portfolio/internal/mcp"
	"github.com/rpggio/portfolio/internal/store"
	"github.com/rpggio/portfolio/internal/transport"
	"github.com/stretchr/testify/require"
)

const (
	Bucket        = "uploads"
	AdminUser     = "admin"
	AdminPassword = "correct horse"
)

// Options adjust the stack under test.
type Options struct {
	ProtectWrites bool
	// MaxUploadBytes defaults to 1 MiB.
	MaxUploadBytes int64
}

type TestServer struct {
	Server *httptest.Server
	DB     *store.DB
	Blobs  *blob.DiskStore
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.MaxUploadBytes == 0 {
		opts.MaxUploadBytes = 1 << 20
	}

	projectRepo := store.NewProjectRepository(db)
	beatRepo := store.NewBeatRepository(db)
	settingRepo := store.NewSettingRepository(db)
	adminRepo := store.NewAdminRepository(db)
	activityRepo := store.NewActivityRepository(db)

	ts := &TestServer{DB: db}

	// Listen first so public URLs can point back at this server.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ts.Blobs = blob.NewDiskStore(t.TempDir(), "http://"+ln.Addr().String()+"/storage")

	projectSvc := project.NewService(projectRepo, activityRepo, logger)
	beatSvc := beat.NewService(beatRepo, activityRepo, logger)
	settingSvc := setting.NewService(settingRepo, activityRepo, logger)
	adminSvc := admin.NewService(adminRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	uploadSvc := upload.NewService(ts.Blobs, Bucket, upload.DefaultPolicy(opts.MaxUploadBytes), activityRepo, logger)

	_, err = adminSvc.SetPassword(context.Background(), AdminUser, AdminPassword)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Beats:    beatSvc,
			Settings: settingSvc,
			Activity: activitySvc,
		},
		Version: "test",
		Logger:  logger,
	})

	handler := transport.NewServer(transport.Services{
		Projects: projectSvc,
		Beats:    beatSvc,
		Settings: settingSvc,
		Admin:    adminSvc,
		Uploads:  uploadSvc,
		Activity: activitySvc,
		Objects:  ts.Blobs,
		MCP:      mcp.NewHTTPHandler(mcpServer),
	}, transport.Options{
		Logger:        logger,
		ProtectWrites: opts.ProtectWrites,
	})

	ts.Server = httptest.NewUnstartedServer(handler)
	_ = ts.Server.Listener.Close()
	ts.Server.Listener = ln
	ts.Server.Start()

	t.Cleanup(func() {
		ts.Server.Close()
		_ = db.Close()
	})

	return ts
}

// URL joins path onto the server base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
