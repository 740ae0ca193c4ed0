package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/repository"
	"github.com/rpggio/portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	activities := &mocks.ActivityRepository{}

	repo.On("Create", ctx, mock.AnythingOfType("*project.Project")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*project.Project).ID = 7
		}).
		Return(nil)
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.Subject == activity.SubjectProject && e.SubjectID == "7" && e.ActivityType == activity.TypeCreated
	})).Return(nil)

	svc := project.NewService(repo, activities, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{
		Title:       "E-Commerce Platform",
		Description: "Full-stack store",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), proj.ID)
	require.Equal(t, project.StatusCompleted, proj.Status)
	require.False(t, proj.CreatedAt.IsZero())

	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), project.CreateRequest{Description: "no title"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), project.CreateRequest{Title: "no description"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), project.CreateRequest{Title: "t", Description: "d", Status: "archived"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_ListFiltersExactStatus(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, 3).Return([]project.Project{
		{ID: 3, Title: "c", Status: project.StatusPlanned},
		{ID: 2, Title: "b", Status: project.StatusInProgress},
		{ID: 1, Title: "a", Status: project.StatusCompleted},
	}, nil)

	svc := project.NewService(repo, nil, nil)
	got, err := svc.List(ctx, project.ListOptions{Limit: 3, Status: project.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	got, err = svc.List(ctx, project.ListOptions{Limit: 3, Status: "progress"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProjectService_ListSoftFails(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, 0).Return(nil, errors.New("database is locked"))

	svc := project.NewService(repo, nil, nil)
	got, err := svc.List(ctx, project.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestProjectService_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(99)).Return(nil, repository.ErrNotFound)

	title := "renamed"
	svc := project.NewService(repo, nil, nil)
	_, err := svc.Update(ctx, project.UpdateRequest{ID: 99, Title: &title})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	existing := &project.Project{ID: 4, Title: "old", Description: "keep", Status: project.StatusPlanned}
	repo.On("Get", ctx, int64(4)).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*project.Project")).Return(nil)

	title := "new"
	status := project.StatusCompleted
	svc := project.NewService(repo, nil, nil)
	got, err := svc.Update(ctx, project.UpdateRequest{ID: 4, Title: &title, Status: &status})
	require.NoError(t, err)
	require.Equal(t, "new", got.Title)
	require.Equal(t, "keep", got.Description)
	require.Equal(t, project.StatusCompleted, got.Status)
}

func TestProjectService_DeleteMissingIsNotAnError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, int64(12345)).Return(nil)

	svc := project.NewService(repo, nil, nil)
	require.NoError(t, svc.Delete(ctx, 12345))
	require.ErrorIs(t, svc.Delete(ctx, 0), project.ErrInvalidInput)
}
