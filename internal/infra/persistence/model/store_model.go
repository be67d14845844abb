package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. OwnerID is nulled when the owner account is removed.
type StoreModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string        `gorm:"type:varchar(60);not null"`
	Email     string        `gorm:"type:varchar(255);uniqueIndex;not null"`
	Address   string        `gorm:"type:varchar(400)"`
	OwnerID   *uuid.UUID    `gorm:"type:uuid;index"`
	Owner     *AccountModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
