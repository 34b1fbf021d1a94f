package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

type TodoService struct {
	todoRepo repository.TodoRepository
	tagRepo  repository.TagRepository
}

func NewTodoService(todoRepo repository.TodoRepository, tagRepo repository.TagRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		tagRepo:  tagRepo,
	}
}

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    *int
	DueDate     *datatypes.Date
	TagIDs      []uuid.UUID
}

type UpdateTodoInput struct {
	Title       *string
	Description *string
	Priority    *int
	DueDate     *datatypes.Date
	TagIDs      []uuid.UUID
}

type ListTodosInput struct {
	Status string
	TagID  *uuid.UUID
	SortBy string
}

func (s *TodoService) Get(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, dashboardID uuid.UUID, input ListTodosInput) ([]*domain.Todo, error) {
	return s.todoRepo.ListByDashboard(ctx, dashboardID, repository.TodoFilter{
		Status: input.Status,
		TagID:  input.TagID,
		SortBy: input.SortBy,
	})
}

// Search matches the query against todo titles, case-insensitively.
func (s *TodoService) Search(ctx context.Context, dashboardID uuid.UUID, query string, input ListTodosInput) ([]*domain.Todo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("search query is required")
	}
	return s.todoRepo.ListByDashboard(ctx, dashboardID, repository.TodoFilter{
		Status: input.Status,
		TagID:  input.TagID,
		Query:  query,
	})
}

func (s *TodoService) Create(ctx context.Context, dashboardID uuid.UUID, input CreateTodoInput) (*domain.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("todo title is required")
	}

	priority := domain.PriorityDefault
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < domain.PriorityMin || priority > domain.PriorityMax {
		return nil, domain.NewValidationError("priority must be between 1 and 5")
	}

	if input.DueDate != nil {
		due := time.Time(*input.DueDate)
		today := time.Now().Truncate(24 * time.Hour)
		if due.Before(today) {
			return nil, domain.NewValidationError("due date cannot be in the past")
		}
	}

	tags, err := s.resolveTags(ctx, dashboardID, input.TagIDs)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		ID:          uuid.New(),
		DashboardID: dashboardID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      domain.StatusPending,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Tags:        tags,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, dashboardID, todoID uuid.UUID, input UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.getDashboardTodo(ctx, dashboardID, todoID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, domain.NewValidationError("todo title cannot be empty")
		}
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Priority != nil {
		if *input.Priority < domain.PriorityMin || *input.Priority > domain.PriorityMax {
			return nil, domain.NewValidationError("priority must be between 1 and 5")
		}
		todo.Priority = *input.Priority
	}
	if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	todo.UpdatedAt = time.Now()

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		tags, err := s.resolveTags(ctx, dashboardID, input.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.todoRepo.ReplaceTags(ctx, todo, tags); err != nil {
			return nil, err
		}
		todo.Tags = tags
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, dashboardID, todoID uuid.UUID) error {
	if _, err := s.getDashboardTodo(ctx, dashboardID, todoID); err != nil {
		return err
	}
	return s.todoRepo.Delete(ctx, todoID)
}

// Complete marks the todo done and records who completed it and when.
func (s *TodoService) Complete(ctx context.Context, dashboardID, todoID, userID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.getDashboardTodo(ctx, dashboardID, todoID)
	if err != nil {
		return nil, err
	}
	if todo.Status == domain.StatusCompleted {
		return nil, domain.ErrAlreadyCompleted
	}

	now := time.Now()
	todo.Status = domain.StatusCompleted
	todo.CompletedBy = &userID
	todo.CompletedAt = &now
	todo.UpdatedAt = now

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Uncomplete reverts the complete transition, clearing the completedBy
// and completedAt pair.
func (s *TodoService) Uncomplete(ctx context.Context, dashboardID, todoID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.getDashboardTodo(ctx, dashboardID, todoID)
	if err != nil {
		return nil, err
	}
	if todo.Status == domain.StatusPending {
		return nil, domain.ErrAlreadyPending
	}

	todo.Status = domain.StatusPending
	todo.CompletedBy = nil
	todo.CompletedAt = nil
	todo.UpdatedAt = time.Now()

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) getDashboardTodo(ctx context.Context, dashboardID, todoID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.Get(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.DashboardID != dashboardID {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

// resolveTags loads the requested tags, rejecting ids that do not belong
// to the dashboard.
func (s *TodoService) resolveTags(ctx context.Context, dashboardID uuid.UUID, tagIDs []uuid.UUID) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.ListByIDs(ctx, dashboardID, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.NewValidationError("one or more tags do not belong to this dashboard")
	}
	return tags, nil
}
