package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "Testpass1!",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response envelope
type AuthResponse struct {
	Status string `json:"status"`
	Data   struct {
		Message string `json:"message"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		Tokens struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
			Type    string `json:"type"`
		} `json:"tokens"`
	} `json:"data"`
}

// BuildAndAuthenticate creates a user via the API and returns the user with
// its access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.Data.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.Data.User.Username,
		Email:    authResp.Data.User.Email,
	}

	return user, authResp.Data.Tokens.Access
}

// DashboardBuilder creates test dashboards with a builder pattern
type DashboardBuilder struct {
	owner       *domain.User
	title       string
	description string
	isPublic    bool
}

// NewDashboardBuilder creates a new DashboardBuilder with default values
func NewDashboardBuilder() *DashboardBuilder {
	return &DashboardBuilder{
		title: fmt.Sprintf("Dashboard %s", uuid.New().String()[:8]),
	}
}

// WithOwner sets the dashboard owner
func (b *DashboardBuilder) WithOwner(user *domain.User) *DashboardBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *DashboardBuilder) WithTitle(title string) *DashboardBuilder {
	b.title = title
	return b
}

// WithDescription sets the description
func (b *DashboardBuilder) WithDescription(description string) *DashboardBuilder {
	b.description = description
	return b
}

// Public marks the dashboard as publicly readable
func (b *DashboardBuilder) Public() *DashboardBuilder {
	b.isPublic = true
	return b
}

// Build creates the dashboard and its owner membership in the database
func (b *DashboardBuilder) Build(t *testing.T, db *gorm.DB) *domain.Dashboard {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	dashboard := &domain.Dashboard{
		ID:          uuid.New(),
		Title:       b.title,
		Description: b.description,
		OwnerID:     b.owner.ID,
		IsPublic:    b.isPublic,
		PublicLink:  uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(dashboard).Error; err != nil {
		t.Fatalf("failed to create dashboard: %v", err)
	}

	member := &domain.DashboardMember{
		ID:          uuid.New(),
		DashboardID: dashboard.ID,
		UserID:      b.owner.ID,
		Role:        domain.RoleOwner,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}

	return dashboard
}

// AddMember attaches a user to a dashboard with the given role
func AddMember(t *testing.T, db *gorm.DB, dashboard *domain.Dashboard, user *domain.User, role domain.MemberRole) *domain.DashboardMember {
	t.Helper()

	member := &domain.DashboardMember{
		ID:          uuid.New(),
		DashboardID: dashboard.ID,
		UserID:      user.ID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return member
}

// TodoBuilder creates test todos with a builder pattern
type TodoBuilder struct {
	dashboard *domain.Dashboard
	title     string
	priority  int
	status    domain.TodoStatus
	tags      []domain.Tag
}

// NewTodoBuilder creates a new TodoBuilder with default values
func NewTodoBuilder() *TodoBuilder {
	return &TodoBuilder{
		title:    fmt.Sprintf("Todo %s", uuid.New().String()[:8]),
		priority: domain.PriorityDefault,
		status:   domain.StatusPending,
	}
}

// WithDashboard sets the parent dashboard
func (b *TodoBuilder) WithDashboard(dashboard *domain.Dashboard) *TodoBuilder {
	b.dashboard = dashboard
	return b
}

// WithTitle sets the title
func (b *TodoBuilder) WithTitle(title string) *TodoBuilder {
	b.title = title
	return b
}

// WithPriority sets the priority
func (b *TodoBuilder) WithPriority(priority int) *TodoBuilder {
	b.priority = priority
	return b
}

// WithStatus sets the status
func (b *TodoBuilder) WithStatus(status domain.TodoStatus) *TodoBuilder {
	b.status = status
	return b
}

// WithTags attaches existing tags
func (b *TodoBuilder) WithTags(tags ...domain.Tag) *TodoBuilder {
	b.tags = append(b.tags, tags...)
	return b
}

// Build creates the todo in the database
func (b *TodoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Todo {
	t.Helper()

	if b.dashboard == nil {
		b.dashboard = NewDashboardBuilder().Build(t, db)
	}

	todo := &domain.Todo{
		ID:          uuid.New(),
		DashboardID: b.dashboard.ID,
		Title:       b.title,
		Priority:    b.priority,
		Status:      b.status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Tags:        b.tags,
	}

	if err := db.Create(todo).Error; err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	return todo
}

// TagBuilder creates test tags with a builder pattern
type TagBuilder struct {
	dashboard *domain.Dashboard
	name      string
	color     string
}

// NewTagBuilder creates a new TagBuilder with default values
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{
		name:  fmt.Sprintf("tag-%s", uuid.New().String()[:8]),
		color: "#FF0000",
	}
}

// WithDashboard sets the parent dashboard
func (b *TagBuilder) WithDashboard(dashboard *domain.Dashboard) *TagBuilder {
	b.dashboard = dashboard
	return b
}

// WithName sets the name
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.name = name
	return b
}

// WithColor sets the color
func (b *TagBuilder) WithColor(color string) *TagBuilder {
	b.color = color
	return b
}

// Build creates the tag in the database
func (b *TagBuilder) Build(t *testing.T, db *gorm.DB) *domain.Tag {
	t.Helper()

	if b.dashboard == nil {
		b.dashboard = NewDashboardBuilder().Build(t, db)
	}

	tag := &domain.Tag{
		ID:          uuid.New(),
		DashboardID: b.dashboard.ID,
		Name:        b.name,
		Color:       b.color,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	return tag
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// DoAuthenticated executes an authenticated JSON request against the server
func DoAuthenticated(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	req := CreateAuthenticatedRequest(t, method, url, body, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
