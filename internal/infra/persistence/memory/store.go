// Package memory is an in-process implementation of every repository, used
// for local runs and tests. Ratings are sharded by (user, store) key so an
// upsert only serializes against submissions for the same pair.
package memory

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"storerating/internal/domain/entity"
	"storerating/internal/domain/repository"
)

const ratingShardCount = 32

type ratingShard struct {
	mu   sync.Mutex
	rows map[entity.RatingKey]entity.Rating
}

// Store holds accounts, stores and ratings. It is also the RepositoryFactory
// and the TransactionManager for its own repositories.
type Store struct {
	mu          sync.RWMutex
	accounts    map[uuid.UUID]entity.Account
	emails      map[string]uuid.UUID
	stores      map[uuid.UUID]entity.Store
	storeEmails map[string]uuid.UUID

	shards [ratingShardCount]*ratingShard

	// txMu serializes Execute callbacks.
	txMu sync.Mutex
}

func NewStore() *Store {
	s := &Store{
		accounts:    make(map[uuid.UUID]entity.Account),
		emails:      make(map[string]uuid.UUID),
		stores:      make(map[uuid.UUID]entity.Store),
		storeEmails: make(map[string]uuid.UUID),
	}
	for i := range s.shards {
		s.shards[i] = &ratingShard{rows: make(map[entity.RatingKey]entity.Rating)}
	}

	return s
}

func (s *Store) AccountRepo() repository.AccountRepository {
	return &accountRepository{s: s}
}

func (s *Store) StoreRepo() repository.StoreRepository {
	return &storeRepository{s: s}
}

func (s *Store) RatingRepo() repository.RatingRepository {
	return &ratingRepository{s: s}
}

// Execute runs fn while holding the transaction lock. Writes made by fn are
// not rolled back if it fails.
func (s *Store) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	return fn(s)
}

func (s *Store) shardFor(key entity.RatingKey) *ratingShard {
	h := fnv.New32a()
	_, _ = h.Write(key.UserID[:])
	_, _ = h.Write(key.StoreID[:])

	return s.shards[h.Sum32()%ratingShardCount]
}
