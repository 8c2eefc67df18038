package bootstrap

import (
	"context"
	"log/slog"

	"reservebook/internal/handler/middleware"
	"reservebook/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewRateLimiter,
	),
)

// NewRateLimiter shares counters through Redis when RATE_LIMIT_REDIS_URL is set,
// otherwise counts per process.
func NewRateLimiter(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (middleware.RateLimiter, error) {
	rl := cfg.RateLimit
	if rl.RedisURL == "" {
		return middleware.NewMemoryRateLimiter(rl.Requests, rl.Window), nil
	}

	opts, err := redis.ParseURL(rl.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis に接続できません", "error", err.Error(), "fail_open", rl.FailOpen)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return middleware.NewRedisRateLimiter(rdb, rl.Requests, rl.Window, cfg.App.ServiceName+":rl"), nil
}
