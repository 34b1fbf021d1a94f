package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository/postgres"
	"github.com/taskboard-app/taskboard/internal/service"
	"github.com/taskboard-app/taskboard/internal/store"
	"github.com/taskboard-app/taskboard/internal/testutil"
	"github.com/taskboard-app/taskboard/internal/token"
)

func TestSessionService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, store.NewMemory(), cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "newuser",
				Email:    "newuser@example.com",
				Password: "Sup3rSecret!",
			},
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existinguser",
				Email:    "fresh@example.com",
				Password: "Sup3rSecret!",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameExists,
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Username: "freshuser",
				Email:    "taken@example.com",
				Password: "Sup3rSecret!",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := services.Session.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Username, result.User.Username)
			assert.Equal(t, tt.input.Email, result.User.Email)
			assert.NotEmpty(t, result.Tokens.Access)
			assert.NotEmpty(t, result.Tokens.Refresh)
			assert.NotEqual(t, tt.input.Password, result.User.PasswordHash)
		})
	}

	t.Run("weak password", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := services.Session.Register(ctx, service.RegisterInput{
			Username: "weakuser",
			Email:    "weak@example.com",
			Password: "weak",
		})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("missing email", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := services.Session.Register(ctx, service.RegisterInput{
			Username: "nomail",
			Password: "Sup3rSecret!",
		})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestSessionService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, store.NewMemory(), cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "login by username",
			input: service.LoginInput{Username: "loginuser", Password: "Sup3rSecret!"},
		},
		{
			name:  "login by email",
			input: service.LoginInput{Username: "loginuser@example.com", Password: "Sup3rSecret!"},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Username: "loginuser", Password: "Wr0ngPass!"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			input:   service.LoginInput{Username: "nobody", Password: "Sup3rSecret!"},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			testutil.NewUserBuilder().
				WithUsername("loginuser").
				WithEmail("loginuser@example.com").
				WithPassword("Sup3rSecret!").
				Build(t, testDB.DB)

			result, err := services.Session.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "loginuser", result.User.Username)
			assert.NotEmpty(t, result.Tokens.Access)
			assert.NotEmpty(t, result.Tokens.Refresh)
		})
	}

	t.Run("relogin invalidates the earlier refresh token", func(t *testing.T) {
		testDB.Truncate(t)

		testutil.NewUserBuilder().
			WithUsername("loginuser").
			WithEmail("loginuser@example.com").
			WithPassword("Sup3rSecret!").
			Build(t, testDB.DB)

		first, err := services.Session.Login(ctx, service.LoginInput{Username: "loginuser", Password: "Sup3rSecret!"})
		require.NoError(t, err)

		_, err = services.Session.Login(ctx, service.LoginInput{Username: "loginuser", Password: "Sup3rSecret!"})
		require.NoError(t, err)

		_, err = services.Session.Refresh(ctx, first.Tokens.Refresh)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
	})
}

func TestSessionService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, store.NewMemory(), cfg)
	ctx := context.Background()

	register := func(t *testing.T) *service.AuthResult {
		t.Helper()
		result, err := services.Session.Register(ctx, service.RegisterInput{
			Username: "refreshuser",
			Email:    "refresh@example.com",
			Password: "Sup3rSecret!",
		})
		require.NoError(t, err)
		return result
	}

	t.Run("exchanges a valid refresh token", func(t *testing.T) {
		testDB.Truncate(t)
		result := register(t)

		rotated, err := services.Session.Refresh(ctx, result.Tokens.Refresh)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, rotated.User.ID)
		assert.NotEmpty(t, rotated.Tokens.Access)
		assert.NotEqual(t, result.Tokens.Refresh, rotated.Tokens.Refresh)
	})

	t.Run("rejects a rotated-out refresh token", func(t *testing.T) {
		testDB.Truncate(t)
		result := register(t)

		_, err := services.Session.Refresh(ctx, result.Tokens.Refresh)
		require.NoError(t, err)

		_, err = services.Session.Refresh(ctx, result.Tokens.Refresh)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		testDB.Truncate(t)
		result := register(t)

		_, err := services.Session.Refresh(ctx, result.Tokens.Access)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("rejects after logout", func(t *testing.T) {
		testDB.Truncate(t)
		result := register(t)

		require.NoError(t, services.Session.InvalidateAllForUser(ctx, result.User.ID))

		_, err := services.Session.Refresh(ctx, result.Tokens.Refresh)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := services.Session.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}

func TestSessionService_Verify(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, store.NewMemory(), cfg)
	ctx := context.Background()

	result, err := services.Session.Register(ctx, service.RegisterInput{
		Username: "verifyuser",
		Email:    "verify@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	assert.True(t, services.Session.Verify(result.Tokens.Access, token.TypeAccess))
	assert.True(t, services.Session.Verify(result.Tokens.Refresh, token.TypeRefresh))
	assert.False(t, services.Session.Verify(result.Tokens.Refresh, token.TypeAccess))
	assert.False(t, services.Session.Verify(result.Tokens.Access, token.TypeRefresh))
	assert.False(t, services.Session.Verify("not-a-token", token.TypeAccess))
}

func TestSessionService_Authenticate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, store.NewMemory(), cfg)
	ctx := context.Background()

	result, err := services.Session.Register(ctx, service.RegisterInput{
		Username: "authuser",
		Email:    "auth@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	t.Run("resolves a live user", func(t *testing.T) {
		user, err := services.Session.Authenticate(ctx, result.Tokens.Access)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, user.ID)
	})

	t.Run("rejects a refresh token", func(t *testing.T) {
		_, err := services.Session.Authenticate(ctx, result.Tokens.Refresh)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("rejects a deleted user", func(t *testing.T) {
		require.NoError(t, testDB.DB.Delete(&domain.User{}, "id = ?", result.User.ID).Error)

		_, err := services.Session.Authenticate(ctx, result.Tokens.Access)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
