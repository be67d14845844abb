package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/errors"
)

type accountRepository struct {
	s *Store
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[entity.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	account := r.s.accounts[id]

	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate account id")
		}
		account.ID = id
	}
	account.Email = entity.NormalizeEmail(account.Email)

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = account.CreatedAt
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[account.Email]; taken {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}
	if _, taken := r.s.accounts[account.ID]; taken {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("account id already exists")
	}

	r.s.accounts[account.ID] = *account
	r.s.emails[account.Email] = account.ID

	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = updatedAt
	r.s.accounts[id] = account

	return nil
}
