package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"beach-review/models"
	"beach-review/utils"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// fixedWindow increments the counter and starts its TTL on the first hit of
// a window only, so later hits never extend the window.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RateLimiter is a fixed-window limiter backed by Redis. Logged-in callers
// are keyed by user id, everyone else by client address.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	n, err := fixedWindow.Run(ctx, l.rdb, []string{"beach:rl:" + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, 0, err
	}
	return n <= l.limit, n, nil
}

// clientKey identifies the caller independently of its session, which any
// client can replace by fetching the index again.
func clientKey(r *http.Request) string {
	if id, ok := utils.CurrentUserID(r.Context()); ok {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// Middleware limits requests per caller. A nil limiter lets everything
// through, and Redis failures fail open.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, n, err := l.Allow(r.Context(), clientKey(r))
		if err != nil {
			log.Warnf("Rate limiter unavailable: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			utils.RespondWithError(w, http.StatusTooManyRequests, models.Error{
				Message: fmt.Sprintf("Rate limit exceeded (count=%d, limit=%d)", n, l.limit),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
