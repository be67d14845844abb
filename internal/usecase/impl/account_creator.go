package impl

import (
	"context"
	"log/slog"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

// accountCreator persists already validated accounts for both self-registration
// and admin creation.
type accountCreator struct {
	accounts repository.AccountRepository
	hasher   service.PasswordHasher
}

func (c accountCreator) create(ctx context.Context, logger *slog.Logger, account *entity.Account, password string) error {
	// Cheap pre-check before hashing; Create still enforces uniqueness.
	if _, err := c.accounts.FindByEmail(ctx, account.Email); err == nil {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	account.PasswordHash = hash

	if err := c.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrAccountAlreadyExists) {
			return err
		}

		return errors.Wrap(err, "failed to create account")
	}

	logger.Info("Account created",
		slog.String("accountID", account.ID.String()),
		slog.String("role", string(account.Role)),
	)

	return nil
}
