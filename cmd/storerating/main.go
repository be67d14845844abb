package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"

	"storerating/config"
	"storerating/internal/delivery"
	"storerating/internal/delivery/api"
	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/router/handler"
	"storerating/internal/errors"
	"storerating/internal/infra/auth"
	logs "storerating/internal/infra/log"
	"storerating/internal/infra/persistence"
	"storerating/internal/infra/pubsub"
	"storerating/internal/infra/qrcode"
	"storerating/internal/infra/ratelimit"
	"storerating/internal/infra/revocation"
	"storerating/internal/usecase"
	"storerating/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.NewRepositories,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPasswordHasher,
			revocation.NewTokenRevoker,
			auth.NewJWTService,
			ratelimit.NewLoginLimiter,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewAdminService,
			impl.NewRatingService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewAdminHandler,
			handler.NewRatingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedAdmin creates the configured bootstrap administrator if it is missing.
func seedAdmin(ctx context.Context, cfg *config.Config, admin usecase.AdminUsecase, logger *slog.Logger) error {
	seed := cfg.Bootstrap.Admin
	if strings.TrimSpace(seed.Email) == "" {
		return nil
	}

	created, err := admin.EnsureAdmin(ctx, &usecase.CreateAccountInput{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
		Address:  seed.Address,
	})
	if err != nil {
		return errors.Wrap(err, "seed bootstrap admin")
	}
	if created {
		logger.Info("Bootstrap admin created", slog.String("email", seed.Email))
	}

	return nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
