package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
)

type ratingRepository struct {
	s *Store
}

// Upsert holds the shard lock of the (user, store) key for the whole
// read-modify-write, so two submissions for one pair never both insert.
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entity.ScoreInRange(rating.Score) {
		return domainerrors.NewValidationError(domainerrors.FieldError{Field: "score", Message: "must be an integer between 1 and 5"})
	}

	r.s.mu.RLock()
	_, storeOK := r.s.stores[rating.StoreID]
	_, userOK := r.s.accounts[rating.UserID]
	r.s.mu.RUnlock()
	if !storeOK || !userOK {
		return domainerrors.ErrStoreNotFound.WrapMessage("rating references a missing store or account")
	}

	key := rating.Key()
	shard := r.s.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	row, exists := shard.rows[key]
	if exists {
		row.Score = rating.Score
		row.UpdatedAt = rating.UpdatedAt
	} else {
		row = entity.Rating{
			UserID:    rating.UserID,
			StoreID:   rating.StoreID,
			Score:     rating.Score,
			CreatedAt: rating.UpdatedAt,
			UpdatedAt: rating.UpdatedAt,
		}
	}
	shard.rows[key] = row
	*rating = row

	return nil
}

func (r *ratingRepository) AverageForStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreAverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sum, count int64
	for _, shard := range r.s.shards {
		shard.mu.Lock()
		for key, row := range shard.rows {
			if key.StoreID == storeID {
				sum += int64(row.Score)
				count++
			}
		}
		shard.mu.Unlock()
	}

	avg := &entity.StoreAverage{StoreID: storeID, Count: count}
	if count > 0 {
		avg.Average = entity.RoundAverage(float64(sum) / float64(count))
	}

	return avg, nil
}

func (r *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.RatingWithRater, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []entity.Rating
	for _, shard := range r.s.shards {
		shard.mu.Lock()
		for key, row := range shard.rows {
			if key.StoreID == storeID {
				rows = append(rows, row)
			}
		}
		shard.mu.Unlock()
	}

	r.s.mu.RLock()
	result := make([]entity.RatingWithRater, 0, len(rows))
	for _, row := range rows {
		rater := r.s.accounts[row.UserID]
		result = append(result, entity.RatingWithRater{
			Rating:    row,
			UserName:  rater.Name,
			UserEmail: rater.Email,
		})
	}
	r.s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}
