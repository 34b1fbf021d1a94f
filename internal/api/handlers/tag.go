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

type TagHandler struct {
	tags        *service.TagService
	permissions *service.PermissionService
}

func NewTagHandler(tags *service.TagService, permissions *service.PermissionService) *TagHandler {
	return &TagHandler{tags: tags, permissions: permissions}
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateAccess(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	tags, err := h.tags.List(r.Context(), dashboardID)
	if err != nil {
		respond.Err(w, err)
		return
	}
	payloads := make([]TagPayload, 0, len(tags))
	for _, tag := range tags {
		payloads = append(payloads, toTagPayload(tag))
	}
	respond.Success(w, http.StatusOK, map[string]interface{}{"tags": payloads})
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	tag, err := h.tags.Create(r.Context(), dashboardID, service.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusCreated, toTagPayload(tag))
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	tagID, ok := tagIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	var req UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	tag, err := h.tags.Update(r.Context(), dashboardID, tagID, service.UpdateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, toTagPayload(tag))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	dashboardID, ok := dashboardIDParam(w, r)
	if !ok {
		return
	}
	tagID, ok := tagIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.permissions.ValidateEditPermission(r.Context(), dashboardID, user); err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.tags.Delete(r.Context(), dashboardID, tagID); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Success(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}

func tagIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		respond.Err(w, domain.ErrTagNotFound)
		return uuid.Nil, false
	}
	return id, true
}
