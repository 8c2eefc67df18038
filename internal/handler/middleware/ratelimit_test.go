//go:build unit

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl := NewMemoryRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("allows up to the limit within a window", func(t *testing.T) {
		for i := range 2 {
			ok, err := rl.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok, "request %d", i+1)
		}
		ok, _ := rl.Allow(ctx, "10.0.0.1")
		assert.False(t, ok)
	})

	t.Run("keys are counted separately", func(t *testing.T) {
		ok, _ := rl.Allow(ctx, "10.0.0.2")
		assert.True(t, ok)
	})

	t.Run("a new window resets the count", func(t *testing.T) {
		now = now.Add(time.Minute + time.Second)
		ok, _ := rl.Allow(ctx, "10.0.0.1")
		assert.True(t, ok)
		assert.NotContains(t, rl.visitors, "10.0.0.2", "expired windows are swept")
	})
}

func TestNewMemoryRateLimiter_Defaults(t *testing.T) {
	rl := NewMemoryRateLimiter(0, 0)
	assert.Equal(t, 60, rl.limit)
	assert.Equal(t, time.Minute, rl.window)
}

// fakeScripter answers EVALSHA with an in-memory counter per key.
type fakeScripter struct {
	redis.Scripter
	counts map[string]int64
	err    error
}

func (f *fakeScripter) EvalSha(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[keys[0]]++
	cmd.SetVal(f.counts[keys[0]])
	return cmd
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("counts through the script with a prefixed key", func(t *testing.T) {
		fake := &fakeScripter{counts: map[string]int64{}}
		rl := NewRedisRateLimiter(fake, 2, time.Minute, "reservebook:rl")

		for range 2 {
			ok, err := rl.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := rl.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(3), fake.counts["reservebook:rl:10.0.0.1"])
	})

	t.Run("propagates redis errors", func(t *testing.T) {
		rl := NewRedisRateLimiter(&fakeScripter{err: errors.New("connection refused")}, 2, time.Minute, "")

		_, err := rl.Allow(ctx, "10.0.0.1")
		assert.Error(t, err)
		assert.Equal(t, "rl", rl.prefix)
	})
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allowed, s.err }

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		limiter    RateLimiter
		failOpen   bool
		expectCode int
	}{
		{name: "allowed", limiter: stubLimiter{allowed: true}, expectCode: http.StatusOK},
		{name: "over the limit", limiter: stubLimiter{allowed: false}, expectCode: http.StatusTooManyRequests},
		{name: "limiter down, fail open", limiter: stubLimiter{err: errors.New("down")}, failOpen: true, expectCode: http.StatusOK},
		{name: "limiter down, fail closed", limiter: stubLimiter{err: errors.New("down")}, expectCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/reserve", RateLimit(tt.limiter, nil, tt.failOpen), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reserve", nil))

			assert.Equal(t, tt.expectCode, rec.Code)
		})
	}
}
