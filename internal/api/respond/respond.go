// Package respond writes the API's response envelope and translates
// domain errors to HTTP status codes in one place. Handlers raise errors
// close to the failing check and hand them to Err at the boundary.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/service"
	"github.com/taskboard-app/taskboard/internal/token"
)

type successEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func Success(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Status: "success", Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Status: "error", Message: message})
}

// Err maps a domain or service error onto the envelope with the proper
// status code. Unrecognized errors become an opaque 500; token decode
// failures never leak more than the invalid/expired distinction.
func Err(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		Error(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, token.ErrExpiredToken):
		Error(w, http.StatusUnauthorized, "token has expired")
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAuthRequired):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrEditDenied),
		errors.Is(err, domain.ErrOwnerOnly),
		errors.Is(err, domain.ErrOwnerProtected):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDashboardNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrTodoNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, service.ErrUserNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrTagExists),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrAlreadyPending):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled request error")
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
