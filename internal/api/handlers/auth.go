package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskboard-app/taskboard/internal/api/middleware"
	"github.com/taskboard-app/taskboard/internal/api/respond"
	"github.com/taskboard-app/taskboard/internal/config"
	"github.com/taskboard-app/taskboard/internal/service"
)

type AuthHandler struct {
	sessions *service.SessionService
	cfg      *config.Config
}

func NewAuthHandler(sessions *service.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{sessions: sessions, cfg: cfg}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type AuthData struct {
	Message string        `json:"message"`
	User    UserPayload   `json:"user"`
	Tokens  TokensPayload `json:"tokens"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	result, err := h.sessions.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	middleware.SetAuthCookie(w, h.cfg, result.Tokens)
	respond.Success(w, http.StatusCreated, AuthData{
		Message: "registration successful",
		User:    toUserPayload(result.User),
		Tokens:  toTokensPayload(result.Tokens),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	result, err := h.sessions.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	middleware.SetAuthCookie(w, h.cfg, result.Tokens)
	respond.Success(w, http.StatusOK, AuthData{
		Message: "authentication successful",
		User:    toUserPayload(result.User),
		Tokens:  toTokensPayload(result.Tokens),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.sessions.InvalidateAllForUser(r.Context(), user.ID); err != nil {
		respond.Err(w, err)
		return
	}

	middleware.ClearAuthCookie(w)
	respond.Success(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

// Verify validates the access token carried in the Authorization header
// or the auth cookie and returns the user it resolves to.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := middleware.ExtractAccessToken(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "no token provided")
		return
	}

	user, err := h.sessions.Authenticate(r.Context(), accessToken)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid token")
		return
	}

	respond.Success(w, http.StatusOK, map[string]interface{}{
		"message": "token is valid",
		"user":    toUserPayload(user),
	})
}

// Refresh exchanges the refresh token, taken from the auth cookie or the
// request body, for a new pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := middleware.RefreshTokenFromCookie(r)
	if !ok {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			respond.Error(w, http.StatusUnauthorized, "refresh token not found")
			return
		}
		refreshToken = req.Refresh
	}

	result, err := h.sessions.Refresh(r.Context(), refreshToken)
	if err != nil {
		respond.Err(w, err)
		return
	}

	middleware.SetAuthCookie(w, h.cfg, result.Tokens)
	respond.Success(w, http.StatusOK, AuthData{
		Message: "tokens refreshed successfully",
		User:    toUserPayload(result.User),
		Tokens:  toTokensPayload(result.Tokens),
	})
}
