package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
)

type todoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *todoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).Preload("Tags").First(&todo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

var todoSortColumns = map[string]string{
	"priority":    "priority",
	"-priority":   "priority DESC",
	"due_date":    "due_date",
	"-due_date":   "due_date DESC",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

func (r *todoRepository) ListByDashboard(ctx context.Context, dashboardID uuid.UUID, filter repository.TodoFilter) ([]*domain.Todo, error) {
	query := r.db.WithContext(ctx).Preload("Tags").
		Where("todos.dashboard_id = ?", dashboardID)

	if filter.Status != "" {
		query = query.Where("todos.status = ?", filter.Status)
	}
	if filter.TagID != nil {
		query = query.
			Joins("JOIN todo_tags ON todo_tags.todo_id = todos.id").
			Where("todo_tags.tag_id = ?", *filter.TagID)
	}
	if filter.Query != "" {
		query = query.Where("todos.title ILIKE ?", "%"+filter.Query+"%")
	}

	order := "todos.created_at DESC"
	if column, ok := todoSortColumns[filter.SortBy]; ok {
		order = column
	}

	var todos []*domain.Todo
	if err := query.Order(order).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Omit("Tags").Save(todo).Error
}

func (r *todoRepository) ReplaceTags(ctx context.Context, todo *domain.Todo, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Model(todo).Association("Tags").Replace(tags)
}

func (r *todoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM todo_tags WHERE todo_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Todo{}, "id = ?", id).Error
	})
}
