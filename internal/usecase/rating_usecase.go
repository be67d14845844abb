package usecase

import (
	"context"

	"github.com/google/uuid"

	"storerating/internal/domain/entity"
)

// SubmitRatingInput is a raw submission. Score is parsed and range-checked
// by the use case, so any client representation can be passed through.
type SubmitRatingInput struct {
	UserID   uuid.UUID
	StoreID  uuid.UUID
	RawScore string
}

// RatingUsecase is the rating engine.
type RatingUsecase interface {
	// Submit creates or replaces the caller's rating of a store.
	Submit(ctx context.Context, input *SubmitRatingInput) (*entity.Rating, error)
	// AverageFor returns the store mean rounded to one decimal, 0 when unrated.
	// An unknown store is a not-found error.
	AverageFor(ctx context.Context, storeID uuid.UUID) (*entity.StoreAverage, error)
	// OwnerStoreSummary returns the owner's store with its average and ratings.
	OwnerStoreSummary(ctx context.Context, ownerID uuid.UUID) (*entity.StoreRatingSummary, error)
	// OwnerStoreQRCode returns a PNG linking to the rating page of the owner's store.
	OwnerStoreQRCode(ctx context.Context, ownerID uuid.UUID) ([]byte, error)
}
