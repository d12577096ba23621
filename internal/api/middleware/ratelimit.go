package middleware

import (
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// RateLimit returns a middleware applying limiter for one endpoint. The
// scope namespaces the key so distinct endpoints count separately even for
// the same caller. Keys fall back to the remote address when no identity is
// on the context.
func RateLimit(limiter *ratelimit.Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":"
			if userID, ok := GetUserID(r.Context()); ok {
				key += userID.String()
			} else {
				key += r.RemoteAddr
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Advisory throttling: a broken limiter store must not take
				// the API down with it.
				log.Error().Err(err).Str("scope", scope).Msg("rate limiter check failed")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				response.TooManyRequests(w, "rate limit exceeded, retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
