package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/taskboard-app/taskboard/internal/api/middleware"
	"github.com/taskboard-app/taskboard/internal/api/respond"
	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/service"
)

type TodoHandler struct {
	todos       *service.TodoService
	permissions *service.PermissionService
}

func NewTodoHandler(todos *service.TodoService, permissions *service.PermissionService) *TodoHandler {
	return &TodoHandler{todos: todos, permissions: permissions}
}

type CreateTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    *int     `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	TagIDs      []string `json:"tagIds"`
}

type UpdateTodoRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *int     `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	TagIDs      []string `json:"tagIds"`
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	input, ok := listInputFromQuery(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.List(r.Context(), dashboardID, input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, map[string]interface{}{"todos": toTodoPayloads(todos)})
}

func (h *TodoHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	input, ok := listInputFromQuery(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.Search(r.Context(), dashboardID, r.URL.Query().Get("q"), input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, map[string]interface{}{"todos": toTodoPayloads(todos)})
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	dueDate, ok := parseDueDate(w, req.DueDate)
	if !ok {
		return
	}
	tagIDs, ok := parseTagIDs(w, req.TagIDs)
	if !ok {
		return
	}

	todo, err := h.todos.Create(r.Context(), dashboardID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDate,
		TagIDs:      tagIDs,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusCreated, toTodoPayload(todo))
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	todo, err := h.todos.Get(r.Context(), todoID)
	if err != nil || todo.DashboardID != dashboardID {
		respond.Err(w, domain.ErrTodoNotFound)
		return
	}
	respond.Success(w, http.StatusOK, toTodoPayload(todo))
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	dueDate, ok := parseDueDate(w, req.DueDate)
	if !ok {
		return
	}
	tagIDs, ok := parseTagIDs(w, req.TagIDs)
	if !ok {
		return
	}

	todo, err := h.todos.Update(r.Context(), dashboardID, todoID, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDate,
		TagIDs:      tagIDs,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, toTodoPayload(todo))
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.todos.Delete(r.Context(), dashboardID, todoID); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}

// Action dispatches the complete/uncomplete transition endpoints.
func (h *TodoHandler) Action(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var (
		todo *domain.Todo
		err  error
	)
	switch chi.URLParam(r, "action") {
	case "complete":
		todo, err = h.todos.Complete(r.Context(), dashboardID, todoID, user.ID)
	case "uncomplete":
		todo, err = h.todos.Uncomplete(r.Context(), dashboardID, todoID)
	default:
		respond.Error(w, http.StatusBadRequest, "invalid action")
		return
	}
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, toTodoPayload(todo))
}

func todoIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "todoID"))
	if err != nil {
		respond.Err(w, domain.ErrTodoNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func listInputFromQuery(w http.ResponseWriter, r *http.Request) (service.ListTodosInput, bool) {
	input := service.ListTodosInput{
		Status: r.URL.Query().Get("status"),
		SortBy: r.URL.Query().Get("sort_by"),
	}
	if raw := r.URL.Query().Get("tag_id"); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid tag_id")
			return input, false
		}
		input.TagID = &tagID
	}
	return input, true
}

func parseDueDate(w http.ResponseWriter, raw *string) (*datatypes.Date, bool) {
	if raw == nil {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "dueDate must be formatted as YYYY-MM-DD")
		return nil, false
	}
	due := datatypes.Date(parsed)
	return &due, true
}

func parseTagIDs(w http.ResponseWriter, raw []string) ([]uuid.UUID, bool) {
	if raw == nil {
		return nil, true
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid tag id")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
