package transport

import (
	"errors"
	"net/http"
	"net/url"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/portfolio/internal/blob"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/domain/upload"
)

// multipartMemory is how much of a multipart body is buffered before spilling to disk.
const multipartMemory = 8 << 20

type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.services.Settings.Get(r.Context())
	if err != nil {
		s.fail(w, r, err, "failed to fetch settings")
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values setting.Settings
	if err := decodeJSON(w, r, &values); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Settings.Update(r.Context(), values); err != nil {
		s.fail(w, r, err, "failed to update settings")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Settings updated successfully"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.services.Uploads.Policy().MaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusBadRequest, upload.ErrFileTooLarge.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, upload.ErrMissingFile.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, upload.ErrMissingFile.Error())
		return
	}
	defer file.Close()

	asset, err := s.services.Uploads.Upload(r.Context(), upload.Request{
		Kind:        upload.Kind(r.FormValue("type")),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		s.fail(w, r, err, "upload failed")
		return
	}
	WriteJSON(w, http.StatusOK, uploadResponse{URL: asset.URL, Filename: asset.Filename})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.services.Activity.GetRecentActivity(r.Context(), activity.ListActivityOptions{
		Subject: r.URL.Query().Get("subject"),
		Limit:   limit,
	})
	if err != nil {
		s.fail(w, r, err, "failed to fetch activity")
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "object not found")
		return
	}

	f, obj, err := s.services.Objects.Open(r.Context(), chi.URLParam(r, "bucket"), key)
	if err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) || errors.Is(err, blob.ErrInvalidKey) {
			WriteError(w, http.StatusNotFound, "object not found")
			return
		}
		s.fail(w, r, err, "failed to read object")
		return
	}
	defer f.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.SHA256 != "" {
		w.Header().Set("ETag", `"`+obj.SHA256+`"`)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, path.Base(key), obj.LastModified, f)
}
