package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/rpggio/portfolio/internal/domain/admin"
)

type adminKey struct{}

// Authenticator checks admin credentials.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (admin.Session, error)
}

// AdminFromContext returns the authenticated admin, if present.
func AdminFromContext(ctx context.Context) (*admin.User, bool) {
	user, ok := ctx.Value(adminKey{}).(*admin.User)
	return user, ok
}

// AdminMiddleware requires HTTP Basic credentials accepted by the admin gate.
func AdminMiddleware(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="portfolio admin"`)
				WriteError(w, http.StatusUnauthorized, admin.ErrInvalidCredentials.Error())
				return
			}

			sess, err := gate.Login(r.Context(), username, password)
			if err != nil || !sess.Authenticated() {
				if err != nil && !errors.Is(err, admin.ErrInvalidCredentials) && !errors.Is(err, admin.ErrInvalidInput) {
					WriteError(w, http.StatusInternalServerError, "authentication unavailable")
					return
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="portfolio admin"`)
				WriteError(w, http.StatusUnauthorized, admin.ErrInvalidCredentials.Error())
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, sess.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string      `json:"message"`
	User    *admin.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.services.Admin.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err, "login failed")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Message: "Login successful", User: sess.User})
}
