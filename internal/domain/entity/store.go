package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a rateable shop. OwnerID is a weak reference to an OWNER account,
// checked when assigned and not enforced afterwards.
type Store struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
