package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/portfolio/internal/domain/beat"
)

type createBeatRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	AudioURL      string `json:"audio_url"`
	CoverImageURL string `json:"cover_image_url"`
	Genre         string `json:"genre"`
	Duration      *int   `json:"duration"`
}

type updateBeatRequest struct {
	ID            int64   `json:"id"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	AudioURL      *string `json:"audio_url"`
	CoverImageURL *string `json:"cover_image_url"`
	Genre         *string `json:"genre"`
	Duration      *int    `json:"duration"`
}

func (s *Server) handleListBeats(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	beats, err := s.services.Beats.List(r.Context(), beat.ListOptions{
		Limit: limit,
		Genre: r.URL.Query().Get("genre"),
	})
	if err != nil {
		s.fail(w, r, err, "failed to fetch beats")
		return
	}
	WriteJSON(w, http.StatusOK, beats)
}

func (s *Server) handleGetBeat(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.services.Beats.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "failed to fetch beat")
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreateBeat(w http.ResponseWriter, r *http.Request) {
	var req createBeatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.services.Beats.Create(r.Context(), beat.CreateRequest{
		Title:         req.Title,
		Description:   req.Description,
		AudioURL:      req.AudioURL,
		CoverImageURL: req.CoverImageURL,
		Genre:         req.Genre,
		Duration:      req.Duration,
	})
	if err != nil {
		s.fail(w, r, err, "failed to create beat")
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: b.ID, Message: "Beat created successfully"})
}

func (s *Server) handleUpdateBeat(w http.ResponseWriter, r *http.Request) {
	var req updateBeatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := s.services.Beats.Update(r.Context(), beat.UpdateRequest{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		AudioURL:      req.AudioURL,
		CoverImageURL: req.CoverImageURL,
		Genre:         req.Genre,
		Duration:      req.Duration,
	})
	if err != nil {
		s.fail(w, r, err, "failed to update beat")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Beat updated successfully"})
}

func (s *Server) handleDeleteBeat(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Beats.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "failed to delete beat")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Beat deleted successfully"})
}
