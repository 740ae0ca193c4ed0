package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
)

type ProjectView struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url,omitempty"`
	ProjectURL   string `json:"project_url,omitempty"`
	GithubURL    string `json:"github_url,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at" jsonschema:"RFC 3339 creation time"`
}

type BeatView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	AudioURL      string `json:"audio_url"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Duration      *int   `json:"duration,omitempty" jsonschema:"length in seconds"`
	CreatedAt     string `json:"created_at" jsonschema:"RFC 3339 creation time"`
}

type ActivityView struct {
	ID        int64  `json:"id"`
	Subject   string `json:"subject"`
	SubjectID string `json:"subject_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

type ListProjectsInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of projects fetched before filtering"`
	Status string `json:"status,omitempty" jsonschema:"exact status filter: completed, in-progress or planned"`
}

type ListProjectsResult struct {
	Projects []ProjectView `json:"projects"`
}

type CreateProjectInput struct {
	Title        string `json:"title" jsonschema:"project title"`
	Description  string `json:"description" jsonschema:"project description"`
	ImageURL     string `json:"image_url,omitempty"`
	ProjectURL   string `json:"project_url,omitempty"`
	GithubURL    string `json:"github_url,omitempty"`
	Technologies string `json:"technologies,omitempty" jsonschema:"comma separated technology list"`
	Status       string `json:"status,omitempty" jsonschema:"completed (default), in-progress or planned"`
}

type UpdateProjectInput struct {
	ID           int64   `json:"id" jsonschema:"project id"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	ProjectURL   *string `json:"project_url,omitempty"`
	GithubURL    *string `json:"github_url,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type ListBeatsInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of beats fetched before filtering"`
	Genre string `json:"genre,omitempty" jsonschema:"exact genre filter"`
}

type ListBeatsResult struct {
	Beats []BeatView `json:"beats"`
}

type CreateBeatInput struct {
	Title         string `json:"title" jsonschema:"beat title"`
	AudioURL      string `json:"audio_url" jsonschema:"public URL of the uploaded audio file"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Duration      *int   `json:"duration,omitempty" jsonschema:"length in seconds"`
}

type UpdateBeatInput struct {
	ID            int64   `json:"id" jsonschema:"beat id"`
	Title         *string `json:"title,omitempty"`
	AudioURL      *string `json:"audio_url,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	Duration      *int    `json:"duration,omitempty"`
}

type DeleteInput struct {
	ID int64 `json:"id" jsonschema:"id to delete; missing ids are ignored"`
}

type CreatedResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type GetSettingsInput struct{}

type SettingsResult struct {
	Settings map[string]string `json:"settings"`
}

type UpdateSettingsInput struct {
	Settings map[string]string `json:"settings" jsonschema:"keys to upsert: name, bio, tagline, location, email, github_url, linkedin_url, twitter_url, profile_image_url"`
}

type RecentActivityInput struct {
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum entries, default 50"`
	Subject string `json:"subject,omitempty" jsonschema:"project, beat, setting or asset"`
}

type RecentActivityResult struct {
	Entries []ActivityView `json:"entries"`
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List portfolio projects, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListProjectsInput) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		projects, err := svc.Projects.List(ctx, project.ListOptions{Limit: in.Limit, Status: project.Status(in.Status)})
		if err != nil {
			return nil, ListProjectsResult{}, MapError(logger, "list_projects", err)
		}
		out := ListProjectsResult{Projects: make([]ProjectView, 0, len(projects))}
		for _, p := range projects {
			out.Projects = append(out.Projects, projectView(p))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a portfolio project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectInput) (*sdkmcp.CallToolResult, CreatedResult, error) {
		proj, err := svc.Projects.Create(ctx, project.CreateRequest{
			Title:        in.Title,
			Description:  in.Description,
			ImageURL:     in.ImageURL,
			ProjectURL:   in.ProjectURL,
			GithubURL:    in.GithubURL,
			Technologies: in.Technologies,
			Status:       project.Status(in.Status),
		})
		if err != nil {
			return nil, CreatedResult{}, MapError(logger, "create_project", err)
		}
		return nil, CreatedResult{ID: proj.ID, Message: "Project created successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update the supplied fields of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjectInput) (*sdkmcp.CallToolResult, MessageResult, error) {
		req := project.UpdateRequest{
			ID:           in.ID,
			Title:        in.Title,
			Description:  in.Description,
			ImageURL:     in.ImageURL,
			ProjectURL:   in.ProjectURL,
			GithubURL:    in.GithubURL,
			Technologies: in.Technologies,
		}
		if in.Status != nil {
			status := project.Status(*in.Status)
			req.Status = &status
		}
		if _, err := svc.Projects.Update(ctx, req); err != nil {
			return nil, MessageResult{}, MapError(logger, "update_project", err)
		}
		return nil, MessageResult{Message: "Project updated successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteInput) (*sdkmcp.CallToolResult, MessageResult, error) {
		if err := svc.Projects.Delete(ctx, in.ID); err != nil {
			return nil, MessageResult{}, MapError(logger, "delete_project", err)
		}
		return nil, MessageResult{Message: "Project deleted successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_beats",
		Description: "List beats, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListBeatsInput) (*sdkmcp.CallToolResult, ListBeatsResult, error) {
		beats, err := svc.Beats.List(ctx, beat.ListOptions{Limit: in.Limit, Genre: in.Genre})
		if err != nil {
			return nil, ListBeatsResult{}, MapError(logger, "list_beats", err)
		}
		out := ListBeatsResult{Beats: make([]BeatView, 0, len(beats))}
		for _, b := range beats {
			out.Beats = append(out.Beats, beatView(b))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_beat",
		Description: "Create a beat from an uploaded audio URL",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateBeatInput) (*sdkmcp.CallToolResult, CreatedResult, error) {
		b, err := svc.Beats.Create(ctx, beat.CreateRequest{
			Title:         in.Title,
			Description:   in.Description,
			AudioURL:      in.AudioURL,
			CoverImageURL: in.CoverImageURL,
			Genre:         in.Genre,
			Duration:      in.Duration,
		})
		if err != nil {
			return nil, CreatedResult{}, MapError(logger, "create_beat", err)
		}
		return nil, CreatedResult{ID: b.ID, Message: "Beat created successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_beat",
		Description: "Update the supplied fields of a beat",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateBeatInput) (*sdkmcp.CallToolResult, MessageResult, error) {
		_, err := svc.Beats.Update(ctx, beat.UpdateRequest{
			ID:            in.ID,
			Title:         in.Title,
			Description:   in.Description,
			AudioURL:      in.AudioURL,
			CoverImageURL: in.CoverImageURL,
			Genre:         in.Genre,
			Duration:      in.Duration,
		})
		if err != nil {
			return nil, MessageResult{}, MapError(logger, "update_beat", err)
		}
		return nil, MessageResult{Message: "Beat updated successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_beat",
		Description: "Delete a beat by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteInput) (*sdkmcp.CallToolResult, MessageResult, error) {
		if err := svc.Beats.Delete(ctx, in.ID); err != nil {
			return nil, MessageResult{}, MapError(logger, "delete_beat", err)
		}
		return nil, MessageResult{Message: "Beat deleted successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_settings",
		Description: "Get the site settings map",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetSettingsInput) (*sdkmcp.CallToolResult, SettingsResult, error) {
		settings, err := svc.Settings.Get(ctx)
		if err != nil {
			return nil, SettingsResult{}, MapError(logger, "get_settings", err)
		}
		out := SettingsResult{Settings: make(map[string]string, len(settings))}
		for k, v := range settings {
			out.Settings[string(k)] = v
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_settings",
		Description: "Upsert site settings",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateSettingsInput) (*sdkmcp.CallToolResult, MessageResult, error) {
		values := make(setting.Settings, len(in.Settings))
		for k, v := range in.Settings {
			values[setting.Key(k)] = v
		}
		if err := svc.Settings.Update(ctx, values); err != nil {
			return nil, MessageResult{}, MapError(logger, "update_settings", err)
		}
		return nil, MessageResult{Message: "Settings updated successfully"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent content changes and uploads",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityInput) (*sdkmcp.CallToolResult, RecentActivityResult, error) {
		entries, err := svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{Subject: in.Subject, Limit: in.Limit})
		if err != nil {
			return nil, RecentActivityResult{}, MapError(logger, "recent_activity", err)
		}
		out := RecentActivityResult{Entries: make([]ActivityView, 0, len(entries))}
		for _, e := range entries {
			out.Entries = append(out.Entries, ActivityView{
				ID:        e.ID,
				Subject:   e.Subject,
				SubjectID: e.SubjectID,
				Type:      string(e.ActivityType),
				Summary:   e.Summary,
				CreatedAt: formatTime(e.CreatedAt),
			})
		}
		return nil, out, nil
	})
}

func projectView(p project.Project) ProjectView {
	return ProjectView{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ProjectURL:   p.ProjectURL,
		GithubURL:    p.GithubURL,
		Technologies: p.Technologies,
		Status:       string(p.Status),
		CreatedAt:    formatTime(p.CreatedAt),
	}
}

func beatView(b beat.Beat) BeatView {
	return BeatView{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		AudioURL:      b.AudioURL,
		CoverImageURL: b.CoverImageURL,
		Genre:         b.Genre,
		Duration:      b.Duration,
		CreatedAt:     formatTime(b.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
