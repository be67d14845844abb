// Package persistence selects the storage driver and exposes its repositories to fx.
package persistence

import (
	"log/slog"

	"go.uber.org/fx"

	"storerating/config"
	"storerating/internal/domain/repository"
	"storerating/internal/errors"
	"storerating/internal/infra/persistence/memory"
	"storerating/internal/infra/persistence/postgres"
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of repositories every use case draws from.
type Repositories struct {
	fx.Out

	TxManager repository.TransactionManager
	Accounts  repository.AccountRepository
	Stores    repository.StoreRepository
	Ratings   repository.RatingRepository
}

// NewRepositories opens the configured storage driver.
func NewRepositories(params Params) (Repositories, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()

		return Repositories{
			TxManager: store,
			Accounts:  store.AccountRepo(),
			Stores:    store.StoreRepo(),
			Ratings:   store.RatingRepo(),
		}, nil

	case "", config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager: postgres.NewTransactionManager(db),
			Accounts:  postgres.NewAccountRepository(db),
			Stores:    postgres.NewStoreRepository(db),
			Ratings:   postgres.NewRatingRepository(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unsupported storage driver: %s", params.Config.Storage.Driver)
	}
}
