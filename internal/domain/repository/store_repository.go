package repository

import (
	"context"
	"errors"

	"storerating/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when no store matches the lookup.
var ErrStoreNotFound = errors.New("store not found")

type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindByOwner returns the first store assigned to the owner.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)

	// Create persists a store. A taken email yields domain ErrStoreAlreadyExists.
	Create(ctx context.Context, store *entity.Store) error
}
