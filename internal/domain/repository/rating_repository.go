package repository

import (
	"context"

	"storerating/internal/domain/entity"

	"github.com/google/uuid"
)

// RatingRepository stores at most one rating per (user, store).
type RatingRepository interface {
	// Upsert inserts the rating or overwrites the score of the existing pair in
	// one atomic step. rating.UpdatedAt carries the submission time; CreatedAt
	// is kept on update. The stored row is written back into rating.
	Upsert(ctx context.Context, rating *entity.Rating) error

	// AverageForStore returns the mean score rounded to one decimal, 0 when unrated.
	AverageForStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreAverage, error)

	// ListByStore returns ratings with rater name and email, newest first.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.RatingWithRater, error)
}
