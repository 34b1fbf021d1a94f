package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskboard-app/taskboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type DashboardRepository interface {
	// CreateWithOwner inserts the dashboard and its owner membership in a
	// single transaction; either both rows exist afterwards or neither.
	CreateWithOwner(ctx context.Context, dashboard *domain.Dashboard) (*domain.DashboardMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dashboard, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Dashboard, error)
	Update(ctx context.Context, dashboard *domain.Dashboard) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.DashboardMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DashboardMember, error)
	GetByDashboardAndUser(ctx context.Context, dashboardID, userID uuid.UUID) (*domain.DashboardMember, error)
	ListByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]*domain.DashboardMember, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.MemberRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TodoFilter struct {
	Status string
	TagID  *uuid.UUID
	SortBy string
	Query  string
}

type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	ListByDashboard(ctx context.Context, dashboardID uuid.UUID, filter TodoFilter) ([]*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	ReplaceTags(ctx context.Context, todo *domain.Todo, tags []domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	GetByDashboardAndName(ctx context.Context, dashboardID uuid.UUID, name string) (*domain.Tag, error)
	ListByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]*domain.Tag, error)
	ListByIDs(ctx context.Context, dashboardID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User      UserRepository
	Dashboard DashboardRepository
	Member    MemberRepository
	Todo      TodoRepository
	Tag       TagRepository
}
