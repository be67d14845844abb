package usecase

import (
	"context"

	"github.com/google/uuid"

	"storerating/internal/domain/entity"
)

// CreateAccountInput lets an administrator create an account of any role.
type CreateAccountInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=16"`
	Address  string `json:"address" validate:"required,max=400"`
	Role     string `json:"role" validate:"required,role"`
}

// CreateStoreInput describes a new store. OwnerID, when set, must name an OWNER.
type CreateStoreInput struct {
	Name    string     `json:"name" validate:"required,min=20,max=60"`
	Email   string     `json:"email" validate:"required,email,max=255"`
	Address string     `json:"address" validate:"required,max=400"`
	OwnerID *uuid.UUID `json:"ownerId"`
}

// AdminUsecase holds operations reserved for administrators.
type AdminUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.AccountSummary, error)
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)
	// EnsureAdmin creates an ADMIN account unless the email is already taken.
	// It reports whether an account was created.
	EnsureAdmin(ctx context.Context, input *CreateAccountInput) (bool, error)
}
