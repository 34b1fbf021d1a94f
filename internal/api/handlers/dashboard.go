package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskboard-app/taskboard/internal/api/middleware"
	"github.com/taskboard-app/taskboard/internal/api/respond"
	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/service"
)

type DashboardHandler struct {
	dashboards  *service.DashboardService
	permissions *service.PermissionService
}

func NewDashboardHandler(dashboards *service.DashboardService, permissions *service.PermissionService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, permissions: permissions}
}

type CreateDashboardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type UpdateDashboardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	dashboards, err := h.dashboards.ListForUser(r.Context(), user.ID)
	if err != nil {
		respond.Err(w, err)
		return
	}

	payloads := make([]DashboardPayload, 0, len(dashboards))
	for _, dashboard := range dashboards {
		payloads = append(payloads, toDashboardPayload(dashboard))
	}
	respond.Success(w, http.StatusOK, map[string]interface{}{"dashboards": payloads})
}

func (h *DashboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	dashboard, err := h.dashboards.Create(r.Context(), user.ID, service.CreateDashboardInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusCreated, toDashboardPayload(dashboard))
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	dashboard, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, toDashboardPayload(dashboard))
}

func (h *DashboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req UpdateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	dashboard, err := h.dashboards.Update(r.Context(), dashboardID, service.UpdateDashboardInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, toDashboardPayload(dashboard))
}

func (h *DashboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateOwnerPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.dashboards.Delete(r.Context(), dashboardID); err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, map[string]string{"message": "dashboard deleted"})
}

// dashboardIDParam parses the {dashboardID} route parameter, writing a
// 404 for malformed ids so they are indistinguishable from missing ones.
func dashboardIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "dashboardID"))
	if err != nil {
		respond.Err(w, domain.ErrDashboardNotFound)
		return uuid.Nil, false
	}
	return id, true
}
