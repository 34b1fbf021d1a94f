package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	userRepo      repository.UserRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		userRepo:      userRepo,
	}
}

type CreateDashboardInput struct {
	Title       string
	Description string
	IsPublic    bool
}

type UpdateDashboardInput struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// Create inserts the dashboard together with its owner membership. The
// two rows are written in one transaction; if the membership insert
// fails, the dashboard does not exist either.
func (s *DashboardService) Create(ctx context.Context, ownerID uuid.UUID, input CreateDashboardInput) (*domain.Dashboard, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("dashboard title is required")
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	dashboard := &domain.Dashboard{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     ownerID,
		IsPublic:    input.IsPublic,
		PublicLink:  uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := s.dashboardRepo.CreateWithOwner(ctx, dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// ListForUser returns every dashboard the user is a member of. An unknown
// user id simply yields an empty list.
func (s *DashboardService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Dashboard, error) {
	return s.dashboardRepo.GetByUserID(ctx, userID)
}

func (s *DashboardService) Get(ctx context.Context, id uuid.UUID) (*domain.Dashboard, error) {
	dashboard, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, err
	}
	return dashboard, nil
}

func (s *DashboardService) Update(ctx context.Context, id uuid.UUID, input UpdateDashboardInput) (*domain.Dashboard, error) {
	dashboard, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, domain.NewValidationError("dashboard title cannot be empty")
		}
		dashboard.Title = *input.Title
	}
	if input.Description != nil {
		dashboard.Description = *input.Description
	}
	if input.IsPublic != nil {
		dashboard.IsPublic = *input.IsPublic
	}
	dashboard.UpdatedAt = time.Now()

	if err := s.dashboardRepo.Update(ctx, dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *DashboardService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.dashboardRepo.Delete(ctx, id)
}
