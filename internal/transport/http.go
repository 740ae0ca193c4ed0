package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/portfolio/internal/blob"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/domain/upload"
)

// ObjectOpener reads stored blobs for the public storage route.
type ObjectOpener interface {
	Open(ctx context.Context, bucket, key string) (*os.File, blob.Object, error)
}

// Services are the domain services behind the HTTP surface.
type Services struct {
	Projects *project.Service
	Beats    *beat.Service
	Settings *setting.Service
	Admin    *admin.Service
	Uploads  *upload.Service
	Activity *activity.Service
	// Objects serves /storage; nil disables the route.
	Objects ObjectOpener
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Options tune router behaviour.
type Options struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// ProtectWrites puts mutating routes, /activity and /mcp behind AdminMiddleware.
	ProtectWrites bool
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(services Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{services: services, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/health", srv.handleHealth)
		r.Post("/auth/login", srv.handleLogin)

		r.Get("/projects", srv.handleListProjects)
		r.Get("/projects/{id}", srv.handleGetProject)
		r.Get("/beats", srv.handleListBeats)
		r.Get("/beats/{id}", srv.handleGetBeat)
		r.Get("/settings", srv.handleGetSettings)
		if services.Objects != nil {
			r.Get("/storage/{bucket}/*", srv.handleStorage)
		}

		r.Group(func(r chi.Router) {
			if opts.ProtectWrites {
				r.Use(AdminMiddleware(services.Admin))
			}

			r.Post("/projects", srv.handleCreateProject)
			r.Put("/projects", srv.handleUpdateProject)
			r.Delete("/projects", srv.handleDeleteProject)

			r.Post("/beats", srv.handleCreateBeat)
			r.Put("/beats", srv.handleUpdateBeat)
			r.Delete("/beats", srv.handleDeleteBeat)

			r.Post("/settings", srv.handleUpdateSettings)
			r.Post("/upload", srv.handleUpload)
			r.Get("/activity", srv.handleActivity)
		})
	})

	// The streamable transport holds SSE streams open, so /mcp has no request timeout.
	if services.MCP != nil {
		r.Group(func(r chi.Router) {
			if opts.ProtectWrites {
				r.Use(AdminMiddleware(services.Admin))
			}
			r.Handle("/mcp", services.MCP)
		})
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// fail maps a service error onto a status code. Unclassified errors are
// logged and replaced by fallback.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var uploadErr *upload.Error
	switch {
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, beat.ErrInvalidInput),
		errors.Is(err, setting.ErrInvalidInput),
		errors.Is(err, admin.ErrInvalidInput),
		upload.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, admin.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, admin.ErrInvalidCredentials.Error())
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, beat.ErrBeatNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &uploadErr):
		s.logger.Error(fallback, "request_id", middleware.GetReqID(r.Context()), "error", err)
		WriteError(w, http.StatusInternalServerError, uploadErr.Error())
	default:
		s.logger.Error(fallback, "request_id", middleware.GetReqID(r.Context()), "error", err)
		WriteError(w, http.StatusInternalServerError, fallback)
	}
}
