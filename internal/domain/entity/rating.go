package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is the single live score a user gives a store.
// (UserID, StoreID) identifies it; resubmission overwrites Score in place.
type Rating struct {
	UserID    uuid.UUID `json:"userId"`
	StoreID   uuid.UUID `json:"storeId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingKey identifies a rating.
type RatingKey struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
}

// Key returns the composite identity of the rating.
func (r *Rating) Key() RatingKey {
	return RatingKey{UserID: r.UserID, StoreID: r.StoreID}
}

// ScoreInRange reports whether score is an accepted rating value.
func ScoreInRange(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingWithRater is a rating joined with the rater's public fields.
type RatingWithRater struct {
	Rating
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// StoreAverage is the aggregate of all live scores of a store.
type StoreAverage struct {
	StoreID uuid.UUID `json:"storeId"`
	Average float64   `json:"average"`
	Count   int64     `json:"count"`
}

// StoreRatingSummary is what an owner sees for their store.
type StoreRatingSummary struct {
	Store   *Store            `json:"store"`
	Average float64           `json:"avgRating"`
	Ratings []RatingWithRater `json:"ratings"`
}

// RoundAverage rounds a mean to one decimal place, halves away from zero.
func RoundAverage(mean float64) float64 {
	return math.Round(mean*10) / 10
}
