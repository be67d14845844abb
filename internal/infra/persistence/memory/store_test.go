package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/errors"
)

type fixture struct {
	store *Store
	ctx   context.Context
	shop  *entity.Store
	users []*entity.Account
}

func newFixture(t *testing.T, users int) *fixture {
	t.Helper()

	f := &fixture{store: NewStore(), ctx: context.Background()}
	for i := range users {
		account := &entity.Account{
			Name:  "Rater Number " + string(rune('A'+i)) + " With Long Name",
			Email: "rater" + string(rune('a'+i)) + "@example.com",
			Role:  entity.RoleUser,
		}
		require.NoError(t, f.store.AccountRepo().Create(f.ctx, account))
		f.users = append(f.users, account)
	}

	f.shop = &entity.Store{Name: "Corner Shop", Email: "shop@example.com", Address: "1 Main St"}
	require.NoError(t, f.store.StoreRepo().Create(f.ctx, f.shop))

	return f
}

func (f *fixture) submit(t *testing.T, user *entity.Account, score int) *entity.Rating {
	t.Helper()

	rating := &entity.Rating{UserID: user.ID, StoreID: f.shop.ID, Score: score, UpdatedAt: time.Now()}
	require.NoError(t, f.store.RatingRepo().Upsert(f.ctx, rating))

	return rating
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().AccountRepo()

	account := &entity.Account{Name: "Jane", Email: "  Jane@Example.com", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "jane@example.com", account.Email)

	found, err := repo.FindByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	found, err = repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.Name)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().AccountRepo()

	first := &entity.Account{Name: "First", Email: "dup@example.com", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &entity.Account{Name: "Second", Email: "DUP@example.com", Role: entity.RoleAdmin})
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))

	found, err := repo.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, entity.RoleUser, found.Role)
}

func TestAccountRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().AccountRepo()

	account := &entity.Account{Name: "Jane", Email: "jane@example.com", PasswordHash: "old"}
	require.NoError(t, repo.Create(ctx, account))

	later := account.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.UpdatePassword(ctx, account.ID, "new", later))

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.PasswordHash)
	assert.True(t, found.UpdatedAt.Equal(later))

	err = repo.UpdatePassword(ctx, uuid.New(), "x", later)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestStoreRepository(t *testing.T) {
	f := newFixture(t, 1)
	repo := f.store.StoreRepo()

	err := repo.Create(f.ctx, &entity.Store{Name: "Other", Email: "SHOP@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrStoreAlreadyExists))

	missingOwner := uuid.New()
	err = repo.Create(f.ctx, &entity.Store{Name: "Orphan", Email: "orphan@example.com", OwnerID: &missingOwner})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOwner))

	ownerID := f.users[0].ID
	owned := &entity.Store{Name: "Owned", Email: "owned@example.com", OwnerID: &ownerID}
	require.NoError(t, repo.Create(f.ctx, owned))

	found, err := repo.FindByOwner(f.ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, owned.ID, found.ID)

	_, err = repo.FindByOwner(f.ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)

	_, err = repo.FindByID(f.ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)
}

func TestRatingRepository_ResubmissionReplaces(t *testing.T) {
	f := newFixture(t, 1)
	user := f.users[0]

	first := f.submit(t, user, 1)
	second := f.submit(t, user, 5)

	assert.Equal(t, 5, second.Score)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "created_at survives resubmission")
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	list, err := f.store.RatingRepo().ListByStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Score)
	assert.Equal(t, user.Email, list[0].UserEmail)

	avg, err := f.store.RatingRepo().AverageForStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg.Average, 1e-9)
	assert.Equal(t, int64(1), avg.Count)
}

func TestRatingRepository_Average(t *testing.T) {
	f := newFixture(t, 3)
	repo := f.store.RatingRepo()

	avg, err := repo.AverageForStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	assert.Zero(t, avg.Average)
	assert.Zero(t, avg.Count)

	for i, score := range []int{3, 4, 5} {
		f.submit(t, f.users[i], score)
	}

	avg, err = repo.AverageForStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg.Average, 1e-9)
	assert.Equal(t, int64(3), avg.Count)
}

func TestRatingRepository_AverageRoundsToOneDecimal(t *testing.T) {
	f := newFixture(t, 3)

	for i, score := range []int{4, 4, 3} {
		f.submit(t, f.users[i], score)
	}

	avg, err := f.store.RatingRepo().AverageForStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.7, avg.Average, 1e-9)
}

func TestRatingRepository_RejectsMissingStoreAndBadScore(t *testing.T) {
	f := newFixture(t, 1)
	repo := f.store.RatingRepo()

	err := repo.Upsert(f.ctx, &entity.Rating{UserID: f.users[0].ID, StoreID: uuid.New(), Score: 3})
	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))

	err = repo.Upsert(f.ctx, &entity.Rating{UserID: f.users[0].ID, StoreID: f.shop.ID, Score: 6})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestRatingRepository_ConcurrentSubmissionsKeepOneRow(t *testing.T) {
	f := newFixture(t, 1)
	repo := f.store.RatingRepo()
	user := f.users[0]

	const workers = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			<-start
			rating := &entity.Rating{UserID: user.ID, StoreID: f.shop.ID, Score: score, UpdatedAt: time.Now()}
			assert.NoError(t, repo.Upsert(f.ctx, rating))
		}(i%2*4 + 1)
	}
	close(start)
	wg.Wait()

	list, err := repo.ListByStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, []int{1, 5}, list[0].Score)

	avg, err := repo.AverageForStore(f.ctx, f.shop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), avg.Count)
	assert.InDelta(t, float64(list[0].Score), avg.Average, 1e-9)
}

func TestStore_ExecuteUsesSameRepositories(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.AccountRepo().Create(ctx, &entity.Account{Name: "Tx", Email: "tx@example.com"})
	})
	require.NoError(t, err)

	_, err = s.AccountRepo().FindByEmail(ctx, "tx@example.com")
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.Execute(cancelled, func(repository.RepositoryFactory) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
