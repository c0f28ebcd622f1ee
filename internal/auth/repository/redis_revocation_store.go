// Package repository provides redis-backed storage for token revocation,
// session tracking, and login rate limiting. All operations rely on atomic
// redis primitives so concurrent bursts cannot slip past a check.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/tracker/internal/errors"
)

const (
	// revokedKeyPrefix namespaces blacklist entries, keyed by jti.
	revokedKeyPrefix = "token:revoked:"

	// sessionsKeyPrefix namespaces the per-user set of tracked refresh jtis.
	sessionsKeyPrefix = "user:sessions:"
)

// RedisRevocationStore tracks revoked token identifiers and per-user session
// sets. Every entry carries a TTL bound to the token's remaining lifetime so
// stale entries self-clean.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a RevocationStore backed by redis.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke blacklists a jti for the given TTL. Revoking an already-revoked jti
// is a no-op. A non-positive TTL means the token already expired and nothing
// is stored; an entry without an expiry would be a resource leak.
func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// RevokeOnce blacklists a jti and reports whether this call was the first to
// do so. Refresh rotation uses it to guarantee that a double-refresh race on
// the same token produces at most one winner.
func (s *RedisRevocationStore) RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	won, err := s.client.SetNX(ctx, revokedKeyPrefix+jti, "1", ttl).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to revoke token")
	}
	return won, nil
}

// IsRevoked reports whether a jti is blacklisted.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	count, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}
	return count > 0, nil
}

// TrackSession adds a refresh jti to the user's active session set. The set's
// expiry is refreshed to the token TTL so the whole set self-cleans after the
// newest refresh token expires.
func (s *RedisRevocationStore) TrackSession(
	ctx context.Context,
	userID uuid.UUID,
	jti string,
	ttl time.Duration,
) error {
	key := sessionsKeyPrefix + userID.String()

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, jti)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to track session")
	}
	return nil
}

// EndSession removes a jti from the user's session set. Removing a jti that
// is not tracked is a no-op.
func (s *RedisRevocationStore) EndSession(ctx context.Context, userID uuid.UUID, jti string) error {
	if err := s.client.SRem(ctx, sessionsKeyPrefix+userID.String(), jti).Err(); err != nil {
		return apperrors.Wrap(err, "failed to end session")
	}
	return nil
}

// EndAllSessions revokes every tracked jti for the user and clears the session
// set. Returns the number of sessions revoked. Already-expired entries are
// harmless: their blacklist TTL just outlives the dead token briefly.
func (s *RedisRevocationStore) EndAllSessions(
	ctx context.Context,
	userID uuid.UUID,
	ttl time.Duration,
) (int, error) {
	key := sessionsKeyPrefix + userID.String()

	jtis, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to list sessions")
	}
	if len(jtis) == 0 {
		return 0, nil
	}

	pipe := s.client.TxPipeline()
	for _, jti := range jtis {
		pipe.Set(ctx, revokedKeyPrefix+jti, "1", ttl)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, apperrors.Wrap(err, "failed to end all sessions")
	}

	return len(jtis), nil
}
