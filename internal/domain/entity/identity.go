package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the verified content of an access token.
type Identity struct {
	AccountID uuid.UUID
	Email     string
	Role      Role
	TokenID   string // jti, used for revocation.
	IssuedAt  time.Time
	ExpiresAt time.Time
}
