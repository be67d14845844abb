// Package revocation stores revoked access tokens until they would have expired anyway.
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type cutoffEntry struct {
	cutoff time.Time
	expiry time.Time
}

// MemoryRevoker keeps revocations in process memory (single instance only).
type MemoryRevoker struct {
	mu       sync.Mutex
	tokens   map[string]time.Time
	accounts map[uuid.UUID]cutoffEntry
	now      func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		tokens:   make(map[string]time.Time),
		accounts: make(map[uuid.UUID]cutoffEntry),
		now:      time.Now,
	}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	r.tokens[tokenID] = r.now().Add(ttl)
	r.mu.Unlock()

	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.tokens[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(expiry) {
		delete(r.tokens, tokenID)

		return false, nil
	}

	return true, nil
}

// RevokeAccount keeps the latest cutoff; an older cutoff never replaces a newer one.
func (r *MemoryRevoker) RevokeAccount(_ context.Context, accountID uuid.UUID, cutoff time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry := r.now().Add(ttl)
	if current, ok := r.accounts[accountID]; ok && current.cutoff.After(cutoff) {
		cutoff = current.cutoff
		if current.expiry.After(expiry) {
			expiry = current.expiry
		}
	}
	r.accounts[accountID] = cutoffEntry{cutoff: cutoff, expiry: expiry}

	return nil
}

func (r *MemoryRevoker) RevokedBefore(_ context.Context, accountID uuid.UUID) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.accounts[accountID]
	if !ok {
		return time.Time{}, false, nil
	}
	if r.now().After(entry.expiry) {
		delete(r.accounts, accountID)

		return time.Time{}, false, nil
	}

	return entry.cutoff, true, nil
}
