package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/portfolio/internal/domain/project"
)

type createProjectRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ImageURL     string         `json:"image_url"`
	ProjectURL   string         `json:"project_url"`
	GithubURL    string         `json:"github_url"`
	Technologies string         `json:"technologies"`
	Status       project.Status `json:"status"`
}

type updateProjectRequest struct {
	ID           int64           `json:"id"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	ImageURL     *string         `json:"image_url"`
	ProjectURL   *string         `json:"project_url"`
	GithubURL    *string         `json:"github_url"`
	Technologies *string         `json:"technologies"`
	Status       *project.Status `json:"status"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	projects, err := s.services.Projects.List(r.Context(), project.ListOptions{
		Limit:  limit,
		Status: project.Status(r.URL.Query().Get("status")),
	})
	if err != nil {
		s.fail(w, r, err, "failed to fetch projects")
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	proj, err := s.services.Projects.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "failed to fetch project")
		return
	}
	WriteJSON(w, http.StatusOK, proj)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	proj, err := s.services.Projects.Create(r.Context(), project.CreateRequest{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
		Technologies: req.Technologies,
		Status:       req.Status,
	})
	if err != nil {
		s.fail(w, r, err, "failed to create project")
		return
	}
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: proj.ID, Message: "Project created successfully"})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := s.services.Projects.Update(r.Context(), project.UpdateRequest{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
		Technologies: req.Technologies,
		Status:       req.Status,
	})
	if err != nil {
		s.fail(w, r, err, "failed to update project")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Project updated successfully"})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Projects.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "failed to delete project")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Project deleted successfully"})
}
