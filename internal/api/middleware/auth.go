package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskboard-app/taskboard/internal/api/respond"
	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth is the request-level authentication gate guarding every protected
// operation. It takes the access token from the Authorization header or
// the auth cookie, rejects it unless it decodes as a live access token
// for an existing user, and attaches the resolved user to the request
// context.
func Auth(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := ExtractAccessToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "no token provided")
				return
			}

			user, err := sessions.Authenticate(r.Context(), accessToken)
			if err != nil {
				log.Debug().Err(err).Msg("access token rejected")
				if errors.Is(err, service.ErrUserNotFound) {
					// A token for a deleted user is an auth failure,
					// not a missing resource.
					respond.Error(w, http.StatusUnauthorized, "invalid token")
					return
				}
				respond.Err(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// ExtractAccessToken prefers the Authorization header over the cookie.
func ExtractAccessToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}
	return AccessTokenFromCookie(r)
}
