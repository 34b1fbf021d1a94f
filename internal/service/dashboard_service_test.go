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

func TestDashboardService_Create(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashboards := service.NewDashboardService(repos.Dashboard, repos.User)

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("creates the dashboard with an owner membership", func(t *testing.T) {
		dashboard, err := dashboards.Create(ctx, owner.ID, service.CreateDashboardInput{
			Title:       "My Board",
			Description: "things to do",
		})
		require.NoError(t, err)
		assert.Equal(t, owner.ID, dashboard.OwnerID)
		assert.NotEqual(t, uuid.Nil, dashboard.PublicLink)

		member, err := repos.Member.GetByDashboardAndUser(ctx, dashboard.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, member.Role)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		_, err := dashboards.Create(ctx, owner.ID, service.CreateDashboardInput{Title: "  "})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects an unknown owner", func(t *testing.T) {
		_, err := dashboards.Create(ctx, uuid.New(), service.CreateDashboardInput{Title: "orphan"})
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestDashboardService_ListForUser(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashboards := service.NewDashboardService(repos.Dashboard, repos.User)

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	member, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	owned := testutil.NewDashboardBuilder().WithOwner(owner).Build(t, testDB.DB)
	testutil.NewDashboardBuilder().Build(t, testDB.DB)
	shared := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	testutil.AddMember(t, testDB.DB, shared, member, domain.RoleViewer)
	testutil.AddMember(t, testDB.DB, owned, member, domain.RoleEditor)

	t.Run("membership drives visibility", func(t *testing.T) {
		result, err := dashboards.ListForUser(ctx, member.ID)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("unknown user sees nothing", func(t *testing.T) {
		result, err := dashboards.ListForUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestDashboardService_Update(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashboards := service.NewDashboardService(repos.Dashboard, repos.User)

	dashboard := testutil.NewDashboardBuilder().WithTitle("Before").Build(t, testDB.DB)

	t.Run("updates provided fields only", func(t *testing.T) {
		public := true
		updated, err := dashboards.Update(ctx, dashboard.ID, service.UpdateDashboardInput{
			Title:    strPtr("After"),
			IsPublic: &public,
		})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title)
		assert.True(t, updated.IsPublic)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		_, err := dashboards.Update(ctx, dashboard.ID, service.UpdateDashboardInput{Title: strPtr("")})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown dashboard", func(t *testing.T) {
		_, err := dashboards.Update(ctx, uuid.New(), service.UpdateDashboardInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrDashboardNotFound)
	})
}

func TestDashboardService_Delete(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashboards := service.NewDashboardService(repos.Dashboard, repos.User)

	dashboard := testutil.NewDashboardBuilder().Build(t, testDB.DB)
	todo := testutil.NewTodoBuilder().WithDashboard(dashboard).Build(t, testDB.DB)
	tag := testutil.NewTagBuilder().WithDashboard(dashboard).Build(t, testDB.DB)

	require.NoError(t, dashboards.Delete(ctx, dashboard.ID))
	assert.ErrorIs(t, dashboards.Delete(ctx, dashboard.ID), domain.ErrDashboardNotFound)

	// The delete cascades through todos and tags.
	var todoCount, tagCount int64
	require.NoError(t, testDB.DB.Model(&domain.Todo{}).Where("id = ?", todo.ID).Count(&todoCount).Error)
	require.NoError(t, testDB.DB.Model(&domain.Tag{}).Where("id = ?", tag.ID).Count(&tagCount).Error)
	assert.Zero(t, todoCount)
	assert.Zero(t, tagCount)
}
