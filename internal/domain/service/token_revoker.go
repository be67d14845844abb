package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenRevoker keeps revoked token ids and per-account revocation cutoffs.
// Entries only need to outlive the tokens they reject, so every write carries a ttl.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// RevokeAccount rejects every token of the account issued before cutoff.
	RevokeAccount(ctx context.Context, accountID uuid.UUID, cutoff time.Time, ttl time.Duration) error
	RevokedBefore(ctx context.Context, accountID uuid.UUID) (time.Time, bool, error)
}
