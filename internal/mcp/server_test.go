package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
	"github.com/rpggio/portfolio/internal/repository"
	"github.com/rpggio/portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type toolDeps struct {
	projects   *mocks.ProjectRepository
	beats      *mocks.BeatRepository
	settings   *mocks.SettingRepository
	activities *mocks.ActivityRepository
	session    *sdkmcp.ClientSession
}

func newToolSession(t *testing.T) *toolDeps {
	t.Helper()

	d := &toolDeps{
		projects:   &mocks.ProjectRepository{},
		beats:      &mocks.BeatRepository{},
		settings:   &mocks.SettingRepository{},
		activities: &mocks.ActivityRepository{},
	}
	d.activities.On("Log", mock.Anything, mock.Anything).Return(nil).Maybe()

	server := NewServer(Config{
		Services: Services{
			Projects: project.NewService(d.projects, d.activities, nil),
			Beats:    beat.NewService(d.beats, d.activities, nil),
			Settings: setting.NewService(d.settings, d.activities, nil),
			Activity: activity.NewService(d.activities, nil),
		},
		Version: "test",
	})

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	d.session, err = client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = d.session.Close()
		_ = serverSession.Wait()
	})
	return d
}

func (d *toolDeps) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := d.session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestListToolsRegistersCatalog(t *testing.T) {
	d := newToolSession(t)

	res, err := d.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_projects", "create_project", "update_project", "delete_project",
		"list_beats", "create_beat", "update_beat", "delete_beat",
		"get_settings", "update_settings", "recent_activity",
	}, names)
}

func TestCreateProjectTool(t *testing.T) {
	d := newToolSession(t)
	d.projects.On("Create", mock.Anything, mock.MatchedBy(func(p *project.Project) bool {
		return p.Title == "Site" && p.Status == project.StatusCompleted
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*project.Project).ID = 7
	}).Return(nil)

	text, isErr := d.call(t, "create_project", map[string]any{"title": "Site", "description": "A site"})
	require.False(t, isErr, text)

	var out CreatedResult
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Equal(t, int64(7), out.ID)
	require.Equal(t, "Project created successfully", out.Message)
}

func TestCreateProjectToolRejectsBadStatus(t *testing.T) {
	d := newToolSession(t)

	text, isErr := d.call(t, "create_project", map[string]any{"title": "Site", "description": "A site", "status": "abandoned"})
	require.True(t, isErr)
	require.Contains(t, text, "INVALID_INPUT")
	d.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListProjectsToolFiltersStatus(t *testing.T) {
	d := newToolSession(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	d.projects.On("List", mock.Anything, 0).Return([]project.Project{
		{ID: 2, Title: "B", Status: project.StatusPlanned, CreatedAt: created},
		{ID: 1, Title: "A", Status: project.StatusCompleted, CreatedAt: created},
	}, nil)

	text, isErr := d.call(t, "list_projects", map[string]any{"status": "planned"})
	require.False(t, isErr, text)

	var out ListProjectsResult
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Len(t, out.Projects, 1)
	require.Equal(t, int64(2), out.Projects[0].ID)
	require.Equal(t, "2025-01-02T03:04:05Z", out.Projects[0].CreatedAt)
}

func TestUpdateBeatToolMissing(t *testing.T) {
	d := newToolSession(t)
	d.beats.On("Get", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	text, isErr := d.call(t, "update_beat", map[string]any{"id": 99, "title": "New"})
	require.True(t, isErr)
	require.Contains(t, text, "NOT_FOUND")
}

func TestDeleteBeatToolHidesStoreErrors(t *testing.T) {
	d := newToolSession(t)
	d.beats.On("Delete", mock.Anything, int64(3)).Return(errors.New("disk on fire"))

	text, isErr := d.call(t, "delete_beat", map[string]any{"id": 3})
	require.True(t, isErr)
	require.Contains(t, text, "INTERNAL")
	require.NotContains(t, text, "disk on fire")
}

func TestSettingsTools(t *testing.T) {
	d := newToolSession(t)
	d.settings.On("List", mock.Anything).Return([]setting.Setting{
		{Key: setting.KeyName, Value: "Ada"},
	}, nil)

	text, isErr := d.call(t, "get_settings", map[string]any{})
	require.False(t, isErr, text)
	var got SettingsResult
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	require.Equal(t, map[string]string{"name": "Ada"}, got.Settings)

	text, isErr = d.call(t, "update_settings", map[string]any{"settings": map[string]any{"favorite_color": "blue"}})
	require.True(t, isErr)
	require.Contains(t, text, "INVALID_INPUT")
	d.settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRecentActivityTool(t *testing.T) {
	d := newToolSession(t)
	d.activities.On("List", mock.Anything, activity.ListActivityOptions{Subject: "beat", Limit: activity.DefaultLimit}).
		Return([]activity.ActivityEntry{
			{ID: 1, Subject: "beat", SubjectID: "4", ActivityType: activity.TypeCreated, Summary: "Created beat"},
		}, nil)

	text, isErr := d.call(t, "recent_activity", map[string]any{"subject": "beat"})
	require.False(t, isErr, text)

	var out RecentActivityResult
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Len(t, out.Entries, 1)
	require.Equal(t, "created", out.Entries[0].Type)
}
