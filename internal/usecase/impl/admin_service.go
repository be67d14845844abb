package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
	"storerating/internal/usecase"
	"storerating/internal/validation"
)

type adminService struct {
	txManager repository.TransactionManager
	creator   accountCreator
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Accounts  repository.AccountRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager: params.TxManager,
		creator:   accountCreator{accounts: params.Accounts, hasher: params.Hasher},
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.AccountSummary, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	role, _ := entity.ParseRole(input.Role)
	account := &entity.Account{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Role:    role,
	}
	if err := srv.creator.create(ctx, srv.log(ctx), account, input.Password); err != nil {
		return nil, err
	}

	summary := account.Summary()

	return &summary, nil
}

func (srv *adminService) EnsureAdmin(ctx context.Context, input *usecase.CreateAccountInput) (bool, error) {
	input.Role = string(entity.RoleAdmin)

	_, err := srv.CreateAccount(ctx, input)
	if errors.Is(err, domainerrors.ErrAccountAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// CreateStore checks the owner and inserts the store in one transaction.
func (srv *adminService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	store := &entity.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if store.OwnerID != nil {
			owner, err := repos.AccountRepo().FindByID(ctx, *store.OwnerID)
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidOwner.WrapMessage("owner account does not exist")
			}
			if err != nil {
				return errors.Wrap(err, "failed to load store owner")
			}
			if owner.Role != entity.RoleOwner {
				return domainerrors.ErrInvalidOwner
			}
		}

		return repos.StoreRepo().Create(ctx, store)
	})
	if err != nil {
		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			srv.log(ctx).Info("Store creation rejected", slog.Any("error", err))

			return nil, err
		}

		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Info("Store created", slog.String("storeID", store.ID.String()))

	return store, nil
}
