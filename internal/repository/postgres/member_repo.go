package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *memberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.DashboardMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DashboardMember, error) {
	var member domain.DashboardMember
	err := r.db.WithContext(ctx).Preload("User").First(&member, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetByDashboardAndUser(ctx context.Context, dashboardID, userID uuid.UUID) (*domain.DashboardMember, error) {
	var member domain.DashboardMember
	err := r.db.WithContext(ctx).
		First(&member, "dashboard_id = ? AND user_id = ?", dashboardID, userID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]*domain.DashboardMember, error) {
	var members []*domain.DashboardMember
	err := r.db.WithContext(ctx).Preload("User").
		Where("dashboard_id = ?", dashboardID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.MemberRole) error {
	return r.db.WithContext(ctx).
		Model(&domain.DashboardMember{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.DashboardMember{}, "id = ?", id).Error
}
