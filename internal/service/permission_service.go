package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

// PermissionService answers whether a user may view, edit or administer a
// dashboard. Answers are always re-queried, never cached.
type PermissionService struct {
	dashboardRepo repository.DashboardRepository
	memberRepo    repository.MemberRepository
}

func NewPermissionService(dashboardRepo repository.DashboardRepository, memberRepo repository.MemberRepository) *PermissionService {
	return &PermissionService{
		dashboardRepo: dashboardRepo,
		memberRepo:    memberRepo,
	}
}

// CheckAccess grants when the dashboard is public or the user holds any
// membership. A nil error means granted; otherwise the error names the
// denial reason.
func (s *PermissionService) CheckAccess(ctx context.Context, dashboardID uuid.UUID, user *domain.User) error {
	if user == nil {
		return domain.ErrAuthRequired
	}

	dashboard, err := s.getDashboard(ctx, dashboardID)
	if err != nil {
		return err
	}
	if dashboard.IsPublic {
		return nil
	}

	if _, err := s.memberRepo.GetByDashboardAndUser(ctx, dashboardID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	return nil
}

// CheckEditPermission grants for owner and editor members only.
func (s *PermissionService) CheckEditPermission(ctx context.Context, dashboardID uuid.UUID, user *domain.User) error {
	if user == nil {
		return domain.ErrAuthRequired
	}

	if _, err := s.getDashboard(ctx, dashboardID); err != nil {
		return err
	}

	member, err := s.memberRepo.GetByDashboardAndUser(ctx, dashboardID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	if !member.Role.CanEdit() {
		return domain.ErrEditDenied
	}
	return nil
}

// CheckOwnerPermission grants only for the dashboard owner.
func (s *PermissionService) CheckOwnerPermission(ctx context.Context, dashboardID uuid.UUID, user *domain.User) error {
	if user == nil {
		return domain.ErrAuthRequired
	}

	dashboard, err := s.getDashboard(ctx, dashboardID)
	if err != nil {
		return err
	}
	if dashboard.OwnerID != user.ID {
		return domain.ErrOwnerOnly
	}
	return nil
}

// ValidateAccess is the handler-facing form of CheckAccess: it returns
// the dashboard when granted and the denial reason otherwise. Handlers
// never re-implement the role checks inline.
func (s *PermissionService) ValidateAccess(ctx context.Context, dashboardID uuid.UUID, user *domain.User) (*domain.Dashboard, error) {
	if err := s.CheckAccess(ctx, dashboardID, user); err != nil {
		return nil, err
	}
	return s.getDashboard(ctx, dashboardID)
}

func (s *PermissionService) ValidateEditPermission(ctx context.Context, dashboardID uuid.UUID, user *domain.User) (*domain.Dashboard, error) {
	if err := s.CheckEditPermission(ctx, dashboardID, user); err != nil {
		return nil, err
	}
	return s.getDashboard(ctx, dashboardID)
}

func (s *PermissionService) ValidateOwnerPermission(ctx context.Context, dashboardID uuid.UUID, user *domain.User) (*domain.Dashboard, error) {
	if err := s.CheckOwnerPermission(ctx, dashboardID, user); err != nil {
		return nil, err
	}
	return s.getDashboard(ctx, dashboardID)
}

// GetUserRole returns the user's role on the dashboard, or false when the
// user is not a member.
func (s *PermissionService) GetUserRole(ctx context.Context, user *domain.User, dashboardID uuid.UUID) (domain.MemberRole, bool, error) {
	if user == nil {
		return "", false, nil
	}
	member, err := s.memberRepo.GetByDashboardAndUser(ctx, dashboardID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}

func (s *PermissionService) getDashboard(ctx context.Context, dashboardID uuid.UUID) (*domain.Dashboard, error) {
	dashboard, err := s.dashboardRepo.GetByID(ctx, dashboardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, err
	}
	return dashboard, nil
}
