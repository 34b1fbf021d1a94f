package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TodoStatus string

const (
	StatusPending   TodoStatus = "pending"
	StatusCompleted TodoStatus = "completed"
)

const (
	PriorityMin     = 1
	PriorityMax     = 5
	PriorityDefault = 3
)

type Todo struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DashboardID uuid.UUID       `json:"dashboardId" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description"`
	Priority    int             `json:"priority" gorm:"not null;default:3"`
	Status      TodoStatus      `json:"status" gorm:"not null;default:pending"`
	DueDate     *datatypes.Date `json:"dueDate"`
	CompletedBy *uuid.UUID      `json:"completedBy" gorm:"type:uuid"`
	CompletedAt *time.Time      `json:"completedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	Tags []Tag `json:"tags" gorm:"many2many:todo_tags;constraint:OnDelete:CASCADE"`
}

type Tag struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DashboardID uuid.UUID `json:"dashboardId" gorm:"type:uuid;not null;uniqueIndex:idx_dashboard_tag_name"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_dashboard_tag_name"`
	Color       string    `json:"color" gorm:"not null;default:#000000"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
