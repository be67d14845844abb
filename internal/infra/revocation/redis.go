package revocation

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storerating/internal/errors"
)

const keyPrefix = "storerating:revoked"

// cutoffScript stores the cutoff only when it is newer than the current one.
var cutoffScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current and tonumber(current) >= tonumber(ARGV[1]) then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// RedisRevoker stores revocations in Redis with TTL so they can be shared across instances.
type RedisRevoker struct {
	client redis.UniversalClient
}

func NewRedisRevoker(client redis.UniversalClient) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set revoked token")
	}

	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(tokenID)).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis exists revoked token")
	}

	return n > 0, nil
}

func (r *RedisRevoker) RevokeAccount(ctx context.Context, accountID uuid.UUID, cutoff time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := cutoffScript.Run(ctx, r.client, []string{accountKey(accountID)}, cutoff.UnixMilli(), ttl.Milliseconds()).Err()
	if err != nil {
		return errors.Wrap(err, "redis set account cutoff")
	}

	return nil
}

func (r *RedisRevoker) RevokedBefore(ctx context.Context, accountID uuid.UUID) (time.Time, bool, error) {
	raw, err := r.client.Get(ctx, accountKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "redis get account cutoff")
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "parse account cutoff %q", raw)
	}

	return time.UnixMilli(ms), true, nil
}

func tokenKey(tokenID string) string {
	return keyPrefix + ":token:" + tokenID
}

func accountKey(accountID uuid.UUID) string {
	return keyPrefix + ":account:" + accountID.String()
}
