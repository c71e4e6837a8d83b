package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beach-review/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int64) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRateLimiter(rdb, limit, time.Minute), mr
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5)
	ctx := context.Background()

	// One hit every 50s stays under 5 per minute and must never be refused.
	for i := 0; i < 10; i++ {
		ok, n, err := limiter.Allow(ctx, "steady")
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i)
		assert.LessOrEqual(t, n, int64(2), "hit %d", i)
		mr.FastForward(50 * time.Second)
	}
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	limiter, mr := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, n, err := limiter.Allow(ctx, "burst")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(i), n)
	}
	ok, n, err := limiter.Allow(ctx, "burst")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(4), n)

	mr.FastForward(61 * time.Second)
	ok, n, err = limiter.Allow(ctx, "burst")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter, mr := newTestLimiter(t, 2)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(sid string, userID uint) int {
		r := httptest.NewRequest("POST", "/auth/login", nil)
		r.RemoteAddr = "203.0.113.7:40000"
		r = r.WithContext(utils.WithSession(r.Context(), utils.Session{ID: sid, UserID: userID, Email: "u@example.com"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	t.Run("new sessions from one client share a budget", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("s1", 0))
		assert.Equal(t, http.StatusNoContent, send("s2", 0))
		assert.Equal(t, http.StatusTooManyRequests, send("s3", 0))
	})

	t.Run("logged-in users are keyed by id", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("s4", 9))
		assert.Equal(t, http.StatusNoContent, send("s5", 9))
		assert.Equal(t, http.StatusTooManyRequests, send("s6", 9))
		assert.Equal(t, http.StatusNoContent, send("s7", 10))
	})

	t.Run("redis down fails open", func(t *testing.T) {
		mr.Close()
		assert.Equal(t, http.StatusNoContent, send("s8", 0))
	})
}
