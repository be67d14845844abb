package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/infra/persistence/memory"
	mockSvc "storerating/internal/mocks/service"
	"storerating/internal/usecase"
)

func createTestAdminService(t *testing.T) (usecase.AdminUsecase, *memory.Store, *mockSvc.MockPasswordHasher) {
	store := memory.NewStore()
	hasher := mockSvc.NewMockPasswordHasher(t)

	srv := NewAdminService(AdminServiceParams{
		TxManager: store,
		Accounts:  store.AccountRepo(),
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return srv, store, hasher
}

func TestAdminService_CreateAccount_AnyRole(t *testing.T) {
	for _, role := range []string{"ADMIN", "user", "Owner"} {
		t.Run(role, func(t *testing.T) {
			srv, _, hasher := createTestAdminService(t)
			hasher.EXPECT().Hash("correct-horse").Return("hashed", nil)

			summary, err := srv.CreateAccount(context.Background(), &usecase.CreateAccountInput{
				Name:     validName,
				Email:    "new@example.com",
				Password: "correct-horse",
				Address:  "1 Main Street",
				Role:     role,
			})
			require.NoError(t, err)

			want, ok := entity.ParseRole(role)
			require.True(t, ok)
			assert.Equal(t, want, summary.Role)
			assert.NotEqual(t, uuid.Nil, summary.ID)
		})
	}
}

func TestAdminService_CreateAccount_InvalidRole(t *testing.T) {
	srv, _, _ := createTestAdminService(t)

	_, err := srv.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     validName,
		Email:    "new@example.com",
		Password: "correct-horse",
		Address:  "1 Main Street",
		Role:     "SUPERUSER",
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, "role", domainerrors.FieldNames(domainerrors.ValidationFields(err)))
}

func TestAdminService_CreateStore(t *testing.T) {
	srv, store, _ := createTestAdminService(t)
	owner := seedAccount(t, store, "owner@example.com", entity.RoleOwner)

	created, err := srv.CreateStore(context.Background(), &usecase.CreateStoreInput{
		Name:    "Corner Bakery and Coffee House",
		Email:   "Bakery@Example.com",
		Address: "2 Market Street",
		OwnerID: &owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "bakery@example.com", created.Email)

	found, err := store.StoreRepo().FindByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestAdminService_CreateStore_Rejections(t *testing.T) {
	srv, store, _ := createTestAdminService(t)
	rater := seedAccount(t, store, "rater@example.com", entity.RoleUser)
	seedStore(t, store, "taken@example.com", nil)
	missing := uuid.New()

	tests := []struct {
		name    string
		email   string
		ownerID *uuid.UUID
		want    error
	}{
		{"owner has USER role", "a@example.com", &rater.ID, domainerrors.ErrInvalidOwner},
		{"owner does not exist", "b@example.com", &missing, domainerrors.ErrInvalidOwner},
		{"store email taken", "taken@example.com", nil, domainerrors.ErrStoreAlreadyExists},
		{"invalid email", "nope", nil, domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.CreateStore(context.Background(), &usecase.CreateStoreInput{
				Name:    "Corner Bakery and Coffee House",
				Email:   tt.email,
				Address: "2 Market Street",
				OwnerID: tt.ownerID,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdminService_EnsureAdmin(t *testing.T) {
	srv, store, hasher := createTestAdminService(t)
	hasher.EXPECT().Hash("correct-horse").Return("hashed", nil).Once()

	input := func() *usecase.CreateAccountInput {
		return &usecase.CreateAccountInput{
			Name:     validName,
			Email:    "Root@Example.com",
			Password: "correct-horse",
			Address:  "HQ",
			Role:     "USER",
		}
	}

	created, err := srv.EnsureAdmin(context.Background(), input())
	require.NoError(t, err)
	assert.True(t, created)

	account, err := store.AccountRepo().FindByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, account.Role)

	created, err = srv.EnsureAdmin(context.Background(), input())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAdminService_EnsureAdmin_InvalidInput(t *testing.T) {
	srv, _, _ := createTestAdminService(t)

	_, err := srv.EnsureAdmin(context.Background(), &usecase.CreateAccountInput{Email: "root@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
