package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

const defaultTagColor = "#000000"

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

type CreateTagInput struct {
	Name  string
	Color string
}

type UpdateTagInput struct {
	Name  *string
	Color *string
}

func (s *TagService) List(ctx context.Context, dashboardID uuid.UUID) ([]*domain.Tag, error) {
	return s.tagRepo.ListByDashboard(ctx, dashboardID)
}

func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Create(ctx context.Context, dashboardID uuid.UUID, input CreateTagInput) (*domain.Tag, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError("tag name is required")
	}

	color := input.Color
	if color == "" {
		color = defaultTagColor
	}
	if !hexColorPattern.MatchString(color) {
		return nil, domain.NewValidationError("color must be a valid hex color code")
	}

	if _, err := s.tagRepo.GetByDashboardAndName(ctx, dashboardID, input.Name); err == nil {
		return nil, domain.ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &domain.Tag{
		ID:          uuid.New(),
		DashboardID: dashboardID,
		Name:        input.Name,
		Color:       color,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, dashboardID, tagID uuid.UUID, input UpdateTagInput) (*domain.Tag, error) {
	tag, err := s.getDashboardTag(ctx, dashboardID, tagID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.NewValidationError("tag name cannot be empty")
		}
		if *input.Name != tag.Name {
			if _, err := s.tagRepo.GetByDashboardAndName(ctx, dashboardID, *input.Name); err == nil {
				return nil, domain.ErrTagExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		tag.Name = *input.Name
	}
	if input.Color != nil {
		if !hexColorPattern.MatchString(*input.Color) {
			return nil, domain.NewValidationError("color must be a valid hex color code")
		}
		tag.Color = *input.Color
	}
	tag.UpdatedAt = time.Now()

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, dashboardID, tagID uuid.UUID) error {
	if _, err := s.getDashboardTag(ctx, dashboardID, tagID); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, tagID)
}

func (s *TagService) getDashboardTag(ctx context.Context, dashboardID, tagID uuid.UUID) (*domain.Tag, error) {
	tag, err := s.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.DashboardID != dashboardID {
		return nil, domain.ErrTagNotFound
	}
	return tag, nil
}
