package repository

import "context"

// TransactionManager lets the use case layer group repository calls into one
// transaction without depending on a specific driver.
type TransactionManager interface {
	// Execute runs fn within a transaction.
	// If fn returns an error the transaction is rolled back, otherwise it's committed.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
	StoreRepo() StoreRepository
	RatingRepo() RatingRepository
}
