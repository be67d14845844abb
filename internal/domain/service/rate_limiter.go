package service

import "context"

// RateLimiter decides whether another attempt identified by key is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
