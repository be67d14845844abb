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

type storeRepository struct {
	s *Store
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	store, ok := r.s.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}

	return &store, nil
}

func (r *storeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *entity.Store
	for _, store := range r.s.stores {
		if store.OwnerID == nil || *store.OwnerID != ownerID {
			continue
		}
		if found == nil || store.CreatedAt.Before(found.CreatedAt) {
			candidate := store
			found = &candidate
		}
	}
	if found == nil {
		return nil, repository.ErrStoreNotFound
	}

	return found, nil
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if store.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate store id")
		}
		store.ID = id
	}
	store.Email = entity.NormalizeEmail(store.Email)

	now := time.Now()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	if store.UpdatedAt.IsZero() {
		store.UpdatedAt = store.CreatedAt
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.storeEmails[store.Email]; taken {
		return domainerrors.ErrStoreAlreadyExists.WrapMessage("store email already exists")
	}
	if store.OwnerID != nil {
		if _, ok := r.s.accounts[*store.OwnerID]; !ok {
			return domainerrors.ErrInvalidOwner.WrapMessage("owner does not exist")
		}
	}

	r.s.stores[store.ID] = *store
	r.s.storeEmails[store.Email] = store.ID

	return nil
}
