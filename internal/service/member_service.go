package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

type MemberService struct {
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
}

func NewMemberService(memberRepo repository.MemberRepository, userRepo repository.UserRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

func (s *MemberService) List(ctx context.Context, dashboardID uuid.UUID) ([]*domain.DashboardMember, error) {
	return s.memberRepo.ListByDashboard(ctx, dashboardID)
}

// Add invites the user with the given email as editor or viewer. Owner is
// never assignable through this path; the owner membership only comes
// into existence with the dashboard itself.
func (s *MemberService) Add(ctx context.Context, dashboardID uuid.UUID, email string, role domain.MemberRole) (*domain.DashboardMember, error) {
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return nil, domain.NewValidationError(
			fmt.Sprintf("invalid role: must be one of %s, %s", domain.RoleEditor, domain.RoleViewer))
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
		}
		return nil, err
	}

	if _, err := s.memberRepo.GetByDashboardAndUser(ctx, dashboardID, user.ID); err == nil {
		return nil, domain.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &domain.DashboardMember{
		ID:          uuid.New(),
		DashboardID: dashboardID,
		UserID:      user.ID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	member.User = user
	return member, nil
}

// UpdateRole re-roles a non-owner member. The member row is re-fetched
// and must belong to the requested dashboard; a mismatched id reads as
// not found so member ids cannot be probed across dashboards.
func (s *MemberService) UpdateRole(ctx context.Context, dashboardID, memberID uuid.UUID, role domain.MemberRole) (*domain.DashboardMember, error) {
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return nil, domain.NewValidationError(
			fmt.Sprintf("invalid role: must be one of %s, %s", domain.RoleEditor, domain.RoleViewer))
	}

	member, err := s.getDashboardMember(ctx, dashboardID, memberID)
	if err != nil {
		return nil, err
	}
	if member.Role == domain.RoleOwner {
		return nil, domain.ErrOwnerProtected
	}

	if err := s.memberRepo.UpdateRole(ctx, memberID, role); err != nil {
		return nil, err
	}
	member.Role = role
	return member, nil
}

// Remove deletes a non-owner membership.
func (s *MemberService) Remove(ctx context.Context, dashboardID, memberID uuid.UUID) error {
	member, err := s.getDashboardMember(ctx, dashboardID, memberID)
	if err != nil {
		return err
	}
	if member.Role == domain.RoleOwner {
		return domain.ErrOwnerProtected
	}
	return s.memberRepo.Delete(ctx, memberID)
}

func (s *MemberService) getDashboardMember(ctx context.Context, dashboardID, memberID uuid.UUID) (*domain.DashboardMember, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if member.DashboardID != dashboardID {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}
