package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository/postgres"
	"github.com/taskboard-app/taskboard/internal/service"
	"github.com/taskboard-app/taskboard/internal/testutil"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo, repos.Tag)

	dashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	otherDashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	tag := testutil.NewTagBuilder().WithDashboard(dashboard).Build(t, testDB.DB)
	foreignTag := testutil.NewTagBuilder().WithDashboard(otherDashboard).Build(t, testDB.DB)

	t.Run("creates with defaults", func(t *testing.T) {
		todo, err := todos.Create(ctx, dashboard.ID, service.CreateTodoInput{Title: "buy milk"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, todo.Status)
		assert.Equal(t, domain.PriorityDefault, todo.Priority)
		assert.Nil(t, todo.DueDate)
	})

	t.Run("creates with tags", func(t *testing.T) {
		todo, err := todos.Create(ctx, dashboard.ID, service.CreateTodoInput{
			Title:  "tagged",
			TagIDs: []uuid.UUID{tag.ID},
		})
		require.NoError(t, err)
		require.Len(t, todo.Tags, 1)
		assert.Equal(t, tag.ID, todo.Tags[0].ID)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		_, err := todos.Create(ctx, dashboard.ID, service.CreateTodoInput{Title: "   "})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects an out-of-range priority", func(t *testing.T) {
		for _, priority := range []int{0, 6} {
			_, err := todos.Create(ctx, dashboard.ID, service.CreateTodoInput{
				Title:    "prio",
				Priority: intPtr(priority),
			})
			var validationErr *domain.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
	})

	t.Run("rejects a tag from another dashboard", func(t *testing.T) {
		_, err := todos.Create(ctx, dashboard.ID, service.CreateTodoInput{
			Title:  "foreign tag",
			TagIDs: []uuid.UUID{foreignTag.ID},
		})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo, repos.Tag)

	dashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	otherDashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	todo := testutil.NewTodoBuilder().WithDashboard(dashboard).Build(t, testDB.DB)

	t.Run("updates provided fields only", func(t *testing.T) {
		updated, err := todos.Update(ctx, dashboard.ID, todo.ID, service.UpdateTodoInput{
			Title:    strPtr("renamed"),
			Priority: intPtr(5),
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, 5, updated.Priority)
	})

	t.Run("replaces the tag set", func(t *testing.T) {
		tag := testutil.NewTagBuilder().WithDashboard(dashboard).Build(t, testDB.DB)

		updated, err := todos.Update(ctx, dashboard.ID, todo.ID, service.UpdateTodoInput{
			TagIDs: []uuid.UUID{tag.ID},
		})
		require.NoError(t, err)
		require.Len(t, updated.Tags, 1)

		updated, err = todos.Update(ctx, dashboard.ID, todo.ID, service.UpdateTodoInput{
			TagIDs: []uuid.UUID{},
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Tags)
	})

	t.Run("todo id from another dashboard reads as not found", func(t *testing.T) {
		_, err := todos.Update(ctx, otherDashboard.ID, todo.ID, service.UpdateTodoInput{
			Title: strPtr("stolen"),
		})
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})
}

func TestTodoService_CompleteUncomplete(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo, repos.Tag)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	dashboard := testutil.NewDashboardBuilder().WithOwner(user).Build(t, testDB.DB)
	todo := testutil.NewTodoBuilder().WithDashboard(dashboard).Build(t, testDB.DB)

	t.Run("complete records who and when", func(t *testing.T) {
		completed, err := todos.Complete(ctx, dashboard.ID, todo.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, completed.Status)
		require.NotNil(t, completed.CompletedBy)
		assert.Equal(t, user.ID, *completed.CompletedBy)
		assert.NotNil(t, completed.CompletedAt)
	})

	t.Run("complete twice fails", func(t *testing.T) {
		_, err := todos.Complete(ctx, dashboard.ID, todo.ID, user.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	})

	t.Run("uncomplete clears the completion pair", func(t *testing.T) {
		reverted, err := todos.Uncomplete(ctx, dashboard.ID, todo.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, reverted.Status)
		assert.Nil(t, reverted.CompletedBy)
		assert.Nil(t, reverted.CompletedAt)
	})

	t.Run("uncomplete a pending todo fails", func(t *testing.T) {
		_, err := todos.Uncomplete(ctx, dashboard.ID, todo.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyPending)
	})
}

func TestTodoService_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo, repos.Tag)

	dashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	tag := testutil.NewTagBuilder().WithDashboard(dashboard).Build(t, testDB.DB)

	testutil.NewTodoBuilder().WithDashboard(dashboard).WithTitle("Write report").Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithDashboard(dashboard).WithTitle("Review report").
		WithStatus(domain.StatusCompleted).Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithDashboard(dashboard).WithTitle("Walk the dog").
		WithTags(*tag).Build(t, testDB.DB)

	t.Run("lists everything", func(t *testing.T) {
		result, err := todos.List(ctx, dashboard.ID, service.ListTodosInput{})
		require.NoError(t, err)
		assert.Len(t, result, 3)
	})

	t.Run("filters by status", func(t *testing.T) {
		result, err := todos.List(ctx, dashboard.ID, service.ListTodosInput{Status: "completed"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Review report", result[0].Title)
	})

	t.Run("filters by tag", func(t *testing.T) {
		result, err := todos.List(ctx, dashboard.ID, service.ListTodosInput{TagID: &tag.ID})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Walk the dog", result[0].Title)
	})

	t.Run("search matches titles case-insensitively", func(t *testing.T) {
		result, err := todos.Search(ctx, dashboard.ID, "REPORT", service.ListTodosInput{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("search requires a query", func(t *testing.T) {
		_, err := todos.Search(ctx, dashboard.ID, "  ", service.ListTodosInput{})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
