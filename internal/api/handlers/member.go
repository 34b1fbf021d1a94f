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

type MemberHandler struct {
	members     *service.MemberService
	permissions *service.PermissionService
}

func NewMemberHandler(members *service.MemberService, permissions *service.PermissionService) *MemberHandler {
	return &MemberHandler{members: members, permissions: permissions}
}

type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateMemberRequest struct {
	Role string `json:"role"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	members, err := h.members.List(r.Context(), dashboardID)
	if err != nil {
		respond.Err(w, err)
		return
	}

	payloads := make([]MemberPayload, 0, len(members))
	for _, member := range members {
		payloads = append(payloads, toMemberPayload(member))
	}
	respond.Success(w, http.StatusOK, map[string]interface{}{"members": payloads})
}

func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateOwnerPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}
	if req.Email == "" {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	role := domain.MemberRole(req.Role)
	if req.Role == "" {
		role = domain.RoleViewer
	}

	member, err := h.members.Add(r.Context(), dashboardID, req.Email, role)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusCreated, toMemberPayload(member))
}

func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateOwnerPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}
	if req.Role == "" {
		respond.Error(w, http.StatusBadRequest, "role is required")
		return
	}

	member, err := h.members.UpdateRole(r.Context(), dashboardID, memberID, domain.MemberRole(req.Role))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, toMemberPayload(member))
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateOwnerPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.members.Remove(r.Context(), dashboardID, memberID); err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, map[string]string{"message": "member removed successfully"})
}

func memberIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		respond.Err(w, domain.ErrMemberNotFound)
		return uuid.Nil, false
	}
	return id, true
}
