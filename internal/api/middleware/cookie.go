package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskboard-app/taskboard/internal/config"
	"github.com/taskboard-app/taskboard/internal/service"
)

// AuthCookieName is the single cookie carrying the token pair.
const AuthCookieName = "auth_tokens"

type cookiePayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SetAuthCookie writes the token pair as one HttpOnly+Secure cookie. The
// cross-site attribute is only relaxed in development mode.
func SetAuthCookie(w http.ResponseWriter, cfg *config.Config, tokens service.TokenPair) {
	payload, _ := json.Marshal(cookiePayload{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	})

	sameSite := http.SameSiteStrictMode
	if cfg.IsDevelopment() {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   int(cfg.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
	})
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})
}

// AccessTokenFromCookie extracts the access token from the auth cookie.
func AccessTokenFromCookie(r *http.Request) (string, bool) {
	payload, ok := readCookiePayload(r)
	if !ok || payload.AccessToken == "" {
		return "", false
	}
	return payload.AccessToken, true
}

// RefreshTokenFromCookie extracts the refresh token from the auth cookie.
func RefreshTokenFromCookie(r *http.Request) (string, bool) {
	payload, ok := readCookiePayload(r)
	if !ok || payload.RefreshToken == "" {
		return "", false
	}
	return payload.RefreshToken, true
}

func readCookiePayload(r *http.Request) (cookiePayload, bool) {
	var payload cookiePayload

	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return payload, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return payload, false
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, false
	}
	return payload, true
}
