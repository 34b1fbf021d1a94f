package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *dashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CreateWithOwner(ctx context.Context, dashboard *domain.Dashboard) (*domain.DashboardMember, error) {
	member := &domain.DashboardMember{
		ID:       uuid.New(),
		UserID:   dashboard.OwnerID,
		Role:     domain.RoleOwner,
		JoinedAt: time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dashboard).Error; err != nil {
			return err
		}
		member.DashboardID = dashboard.ID
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *dashboardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	err := r.db.WithContext(ctx).First(&dashboard, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (r *dashboardRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Dashboard, error) {
	var dashboards []*domain.Dashboard
	err := r.db.WithContext(ctx).
		Joins("JOIN dashboard_members ON dashboard_members.dashboard_id = dashboards.id").
		Where("dashboard_members.user_id = ?", userID).
		Order("dashboards.created_at DESC").
		Find(&dashboards).Error
	if err != nil {
		return nil, err
	}
	return dashboards, nil
}

func (r *dashboardRepository) Update(ctx context.Context, dashboard *domain.Dashboard) error {
	return r.db.WithContext(ctx).Save(dashboard).Error
}

func (r *dashboardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Members, todos and tags cascade with the dashboard.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.DashboardMember{}, "dashboard_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM todo_tags WHERE todo_id IN (SELECT id FROM todos WHERE dashboard_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Todo{}, "dashboard_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Tag{}, "dashboard_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Dashboard{}, "id = ?", id).Error
	})
}
