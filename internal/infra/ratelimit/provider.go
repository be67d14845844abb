package ratelimit

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"storerating/config"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewLoginLimiter returns the redis limiter when enabled, a no-op limiter otherwise.
func NewLoginLimiter(params Params) (service.RateLimiter, error) {
	cfg := params.Config.RateLimit
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Login rate limiting disabled")

		return NoopLimiter{}, nil
	}
	if cfg.Redis.Addr == "" {
		return nil, errors.New("rateLimit.redis.addr is required when rate limiting is enabled")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	params.Logger.Info("Login rate limiting enabled",
		slog.Int("limit", cfg.Limit),
		slog.Duration("window", cfg.Window),
	)

	return NewFixedWindowLimiter(client, defaultPrefix+":login", cfg.Limit, cfg.Window)
}
