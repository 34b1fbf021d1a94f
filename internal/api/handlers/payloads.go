package handlers

import (
	"time"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/service"
)

type UserPayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type TokensPayload struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Type    string `json:"type"`
}

type DashboardPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	IsPublic    bool      `json:"isPublic"`
	PublicLink  string    `json:"publicLink"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MemberPayload struct {
	ID       string      `json:"id"`
	User     UserPayload `json:"user"`
	Role     string      `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

type TagPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type TodoPayload struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    int          `json:"priority"`
	Status      string       `json:"status"`
	DueDate     *string      `json:"dueDate"`
	Tags        []TagPayload `json:"tags"`
	CompletedBy *string      `json:"completedBy"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func toUserPayload(user *domain.User) UserPayload {
	return UserPayload{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toTokensPayload(tokens service.TokenPair) TokensPayload {
	return TokensPayload{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
		Type:    "Bearer",
	}
}

func toDashboardPayload(dashboard *domain.Dashboard) DashboardPayload {
	return DashboardPayload{
		ID:          dashboard.ID.String(),
		Title:       dashboard.Title,
		Description: dashboard.Description,
		OwnerID:     dashboard.OwnerID.String(),
		IsPublic:    dashboard.IsPublic,
		PublicLink:  dashboard.PublicLink.String(),
		CreatedAt:   dashboard.CreatedAt,
	}
}

func toMemberPayload(member *domain.DashboardMember) MemberPayload {
	payload := MemberPayload{
		ID:       member.ID.String(),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		payload.User = toUserPayload(member.User)
	}
	return payload
}

func toTagPayload(tag *domain.Tag) TagPayload {
	return TagPayload{
		ID:        tag.ID.String(),
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
	}
}

func toTodoPayload(todo *domain.Todo) TodoPayload {
	payload := TodoPayload{
		ID:          todo.ID.String(),
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Status:      string(todo.Status),
		CompletedAt: todo.CompletedAt,
		CreatedAt:   todo.CreatedAt,
		Tags:        make([]TagPayload, 0, len(todo.Tags)),
	}
	if todo.DueDate != nil {
		due := time.Time(*todo.DueDate).Format("2006-01-02")
		payload.DueDate = &due
	}
	if todo.CompletedBy != nil {
		completedBy := todo.CompletedBy.String()
		payload.CompletedBy = &completedBy
	}
	for i := range todo.Tags {
		payload.Tags = append(payload.Tags, toTagPayload(&todo.Tags[i]))
	}
	return payload
}

func toTodoPayloads(todos []*domain.Todo) []TodoPayload {
	payloads := make([]TodoPayload, 0, len(todos))
	for _, todo := range todos {
		payloads = append(payloads, toTodoPayload(todo))
	}
	return payloads
}
