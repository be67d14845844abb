package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
	"storerating/internal/usecase"
)

type ratingService struct {
	stores    repository.StoreRepository
	ratings   repository.RatingRepository
	publisher service.EventPublisher
	qrcode    service.QRCodeService
	logger    *slog.Logger
	now       func() time.Time
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	Stores    repository.StoreRepository
	Ratings   repository.RatingRepository
	Publisher service.EventPublisher
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		stores:    params.Stores,
		ratings:   params.Ratings,
		publisher: params.Publisher,
		qrcode:    params.QRCode,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ParseScore accepts a decimal integer within [MinScore, MaxScore].
func ParseScore(raw string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !entity.ScoreInRange(score) {
		return 0, domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "score",
			Message: "Rating must be between 1 and 5",
		})
	}

	return score, nil
}

func (srv *ratingService) Submit(ctx context.Context, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	score, err := ParseScore(input.RawScore)
	if err != nil {
		return nil, err
	}

	if err := srv.ensureStore(ctx, input.StoreID); err != nil {
		return nil, err
	}

	rating := &entity.Rating{
		UserID:    input.UserID,
		StoreID:   input.StoreID,
		Score:     score,
		UpdatedAt: srv.now().UTC(),
	}
	if err := srv.ratings.Upsert(ctx, rating); err != nil {
		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to upsert rating")
	}

	srv.log(ctx).Info("Rating submitted",
		slog.String("storeID", rating.StoreID.String()),
		slog.Int("score", rating.Score),
	)

	srv.publishSubmitted(ctx, rating)

	return rating, nil
}

// publishSubmitted never fails the submission; the rating is already stored.
func (srv *ratingService) publishSubmitted(ctx context.Context, rating *entity.Rating) {
	avg, err := srv.ratings.AverageForStore(ctx, rating.StoreID)
	if err != nil {
		srv.log(ctx).Warn("Skipping rating event, average unavailable", slog.Any("error", err))

		return
	}

	event := &service.RatingSubmittedEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		UserID:      rating.UserID.String(),
		StoreID:     rating.StoreID.String(),
		Score:       rating.Score,
		Average:     avg.Average,
		SubmittedAt: rating.UpdatedAt,
	}
	if err := srv.publisher.PublishRatingSubmitted(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish rating event",
			slog.String("storeID", event.StoreID),
			slog.Any("error", err),
		)
	}
}

func (srv *ratingService) ensureStore(ctx context.Context, storeID uuid.UUID) error {
	_, err := srv.stores.FindByID(ctx, storeID)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return domainerrors.ErrStoreNotFound
	}

	return errors.Wrap(err, "failed to find store")
}

func (srv *ratingService) AverageFor(ctx context.Context, storeID uuid.UUID) (*entity.StoreAverage, error) {
	if err := srv.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}

	avg, err := srv.ratings.AverageForStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute store average")
	}

	return avg, nil
}

func (srv *ratingService) ownerStore(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	store, err := srv.stores.FindByOwner(ctx, ownerID)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return nil, domainerrors.ErrStoreNotFound.WrapMessage("no store is assigned to this owner")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner store")
	}

	return store, nil
}

func (srv *ratingService) OwnerStoreSummary(ctx context.Context, ownerID uuid.UUID) (*entity.StoreRatingSummary, error) {
	store, err := srv.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	avg, err := srv.ratings.AverageForStore(ctx, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute store average")
	}

	ratings, err := srv.ratings.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return &entity.StoreRatingSummary{
		Store:   store,
		Average: avg.Average,
		Ratings: ratings,
	}, nil
}

func (srv *ratingService) OwnerStoreQRCode(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	store, err := srv.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateStoreQR(store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	return png, nil
}
