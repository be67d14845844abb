package revocation

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

// NewTokenRevoker creates the revocation store named in config.
func NewTokenRevoker(params Params) (service.TokenRevoker, error) {
	cfg := params.Config.Revocation
	if cfg == nil {
		cfg = &config.RevocationConfig{}
	}

	switch cfg.Provider {
	case "", "memory":
		params.Logger.Info("Using in-memory token revocation")

		return NewMemoryRevoker(), nil

	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, errors.New("revocation.redis.addr is required for redis provider")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		params.Lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return errors.Wrap(client.Ping(ctx).Err(), "ping revocation redis")
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		params.Logger.Info("Using redis token revocation", slog.String("addr", cfg.Redis.Addr))

		return NewRedisRevoker(client), nil

	default:
		return nil, errors.Errorf("unsupported revocation provider: %s", cfg.Provider)
	}
}
