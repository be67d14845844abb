package service

import (
	"context"
	"time"

	"storerating/internal/domain/entity"
)

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	// Issue signs a token binding the account id, email and role.
	Issue(account *entity.Account) (string, *entity.Identity, error)

	// Verify returns the identity of a valid token. Tampered, expired and
	// revoked tokens all yield domain ErrTokenInvalid.
	Verify(ctx context.Context, token string) (*entity.Identity, error)

	// TTL is the lifetime of issued tokens.
	TTL() time.Duration
}
