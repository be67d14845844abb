package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/errors"
	"storerating/internal/infra/persistence/model"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert is a single INSERT ... ON CONFLICT (user_id, store_id) DO UPDATE,
// so concurrent submissions for one pair serialize on the primary key.
func (repo *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	m := &model.RatingModel{
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Score:     rating.Score,
		CreatedAt: rating.UpdatedAt,
		UpdatedAt: rating.UpdatedAt,
	}

	err := repo.db.WithContext(ctx).
		Omit("User", "Store").
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(m).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound.WrapMessage("rating references a missing store or account")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError(domainerrors.FieldError{Field: "score", Message: "must be an integer between 1 and 5"})
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert rating")
	}

	rating.Score = m.Score
	rating.CreatedAt = m.CreatedAt
	rating.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *ratingRepository) AverageForStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreAverage, error) {
	var row struct {
		Average float64
		Count   int64
	}

	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("COALESCE(ROUND(AVG(score)::numeric, 1), 0)::float8 AS average, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to average ratings")
	}

	return &entity.StoreAverage{StoreID: storeID, Average: row.Average, Count: row.Count}, nil
}

func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.RatingWithRater, error) {
	var rows []model.RatingWithRaterRow

	err := repo.db.WithContext(ctx).
		Table(model.RatingModel{}.TableName()+" AS r").
		Select("r.user_id, r.store_id, r.score, r.created_at, r.updated_at, a.name AS user_name, a.email AS user_email").
		Joins("JOIN "+model.AccountModel{}.TableName()+" AS a ON a.id = r.user_id").
		Where("r.store_id = ?", storeID).
		Order("r.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	ratings := make([]entity.RatingWithRater, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, entity.RatingWithRater{
			Rating: entity.Rating{
				UserID:    row.UserID,
				StoreID:   row.StoreID,
				Score:     row.Score,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
		})
	}

	return ratings, nil
}
