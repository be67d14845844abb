package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. The composite primary key is the
// uniqueness constraint the upsert resolves conflicts on.
type RatingModel struct {
	UserID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	StoreID   uuid.UUID     `gorm:"type:uuid;primaryKey;index"`
	Score     int           `gorm:"not null;check:chk_ratings_score,score BETWEEN 1 AND 5"`
	User      *AccountModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Store     *StoreModel   `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}

// RatingWithRaterRow is the scan target of the ratings/accounts join.
type RatingWithRaterRow struct {
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
	UserName  string
	UserEmail string
}
