package middlewarex

import (
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimit caps requests per caller per minute using a Redis counter keyed
// by actor id (or remote IP before auth). A nil client disables limiting,
// and Redis being down never blocks traffic.
func RateLimit(rdb *redis.Client, perMin int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil || perMin <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + callerKey(r)

			n, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limit: redis incr failed, letting request through")
				next.ServeHTTP(w, r)
				return
			}
			if n == 1 {
				rdb.Expire(r.Context(), key, time.Minute)
			}
			if n > int64(perMin) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if a, ok := ActorFrom(r.Context()); ok && a.UserID != "" {
		return a.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
