package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskboard-app/taskboard/internal/api/respond"
	"github.com/taskboard-app/taskboard/internal/store"
)

// RateLimit counts requests per client IP in a fixed window backed by the
// shared store. The window resets when the store entry expires, so it is
// not a precise sliding window. Applied outside Auth so over-limit
// clients never reach token validation.
func RateLimit(kv store.Store, name string, limit int64, period time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s:%s", name, clientIP(r))

			count, err := kv.Increment(r.Context(), key, period)
			if err != nil {
				// Fail open: a broken counter backend should not take
				// the endpoint down with it.
				log.Error().Err(err).Str("endpoint", name).Msg("rate limit counter failed")
				next.ServeHTTP(w, r)
				return
			}
			if count > limit {
				respond.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
