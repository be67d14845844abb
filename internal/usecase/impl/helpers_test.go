package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"storerating/internal/domain/entity"
	"storerating/internal/infra/persistence/memory"
)

const validName = "Alexandra Montgomery Jr"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedAccount(t *testing.T, store *memory.Store, email string, role entity.Role) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Name:         validName,
		Email:        email,
		PasswordHash: "stored-hash",
		Address:      "1 Main Street",
		Role:         role,
	}
	require.NoError(t, store.AccountRepo().Create(context.Background(), account))

	return account
}

func seedStore(t *testing.T, store *memory.Store, email string, owner *entity.Account) *entity.Store {
	t.Helper()

	s := &entity.Store{
		Name:    "Corner Bakery and Coffee House",
		Email:   email,
		Address: "2 Market Street",
	}
	if owner != nil {
		s.OwnerID = &owner.ID
	}
	require.NoError(t, store.StoreRepo().Create(context.Background(), s))

	return s
}
