package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/tracker/internal/errors"
)

const (
	// loginWindowKeyPrefix namespaces the sliding-window counters for login attempts.
	loginWindowKeyPrefix = "ratelimit:login:"

	// failedLoginKeyPrefix namespaces the consecutive-failure counters per account.
	failedLoginKeyPrefix = "login:failed:"

	// lockedAccountKeyPrefix namespaces the lockout markers per account.
	lockedAccountKeyPrefix = "account:locked:"
)

// slidingWindowScript counts requests in a window that ends "now" rather than
// in fixed buckets, so a burst straddling a bucket boundary cannot double the
// effective limit. Runs atomically inside redis.
//
// KEYS[1] = window key
// ARGV[1] = now in unix milliseconds
// ARGV[2] = limit
// ARGV[3] = window in milliseconds
// ARGV[4] = unique member for this request
//
// Returns {allowed (0/1), retry_after_seconds}.
var slidingWindowScript = redis.NewScript(`
local window_start = tonumber(ARGV[1]) - tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, window_start)

local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[2]) then
  local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
  local retry_after = 1
  if oldest[2] then
    local free_at = tonumber(oldest[2]) + tonumber(ARGV[3])
    retry_after = math.max(1, math.ceil((free_at - tonumber(ARGV[1])) / 1000))
  end
  return {0, retry_after}
end

redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return {1, 0}
`)

// recordFailureScript increments the per-account failure counter and, at the
// threshold, flips the lockout marker and resets the counter. Atomic so
// concurrent failed attempts cannot lose increments.
//
// KEYS[1] = failure counter key
// KEYS[2] = lockout marker key
// ARGV[1] = counter TTL in milliseconds
// ARGV[2] = lockout threshold
// ARGV[3] = lockout duration in milliseconds
//
// Returns {failure_count, locked (0/1)}.
var recordFailureScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end

if count >= tonumber(ARGV[2]) then
  redis.call('SET', KEYS[2], '1', 'PX', ARGV[3])
  redis.call('DEL', KEYS[1])
  return {count, 1}
end
return {count, 0}
`)

// RedisRateLimiter implements a sliding-window request limiter and a
// progressive account lockout counter on top of redis.
type RedisRateLimiter struct {
	client          *redis.Client
	maxFailures     int
	lockoutDuration time.Duration
}

// NewRedisRateLimiter creates a RateLimiter backed by redis. maxFailures is
// the consecutive-failure threshold that triggers a lockout of
// lockoutDuration.
func NewRedisRateLimiter(
	client *redis.Client,
	maxFailures int,
	lockoutDuration time.Duration,
) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:          client,
		maxFailures:     maxFailures,
		lockoutDuration: lockoutDuration,
	}
}

// Allow reports whether a request for the key fits inside the sliding window.
// When denied, retryAfter tells the caller how many seconds until the oldest
// counted request leaves the window.
func (l *RedisRateLimiter) Allow(
	ctx context.Context,
	key string,
	limit int,
	window time.Duration,
) (allowed bool, retryAfter int, err error) {
	now := time.Now().UTC()

	result, err := slidingWindowScript.Run(
		ctx,
		l.client,
		[]string{loginWindowKeyPrefix + key},
		now.UnixMilli(),
		limit,
		window.Milliseconds(),
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return false, 0, apperrors.Wrap(err, "failed to check rate limit")
	}

	return result[0] == 1, int(result[1]), nil
}

// RecordFailure counts a failed login attempt for the account. Reaching the
// threshold locks the account for the configured lockout duration.
func (l *RedisRateLimiter) RecordFailure(
	ctx context.Context,
	account string,
) (failureCount int, locked bool, err error) {
	result, err := recordFailureScript.Run(
		ctx,
		l.client,
		[]string{failedLoginKeyPrefix + account, lockedAccountKeyPrefix + account},
		l.lockoutDuration.Milliseconds(),
		l.maxFailures,
		l.lockoutDuration.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, false, apperrors.Wrap(err, "failed to record login failure")
	}

	return int(result[0]), result[1] == 1, nil
}

// RecordSuccess resets the account's failure counter after a successful login.
func (l *RedisRateLimiter) RecordSuccess(ctx context.Context, account string) error {
	if err := l.client.Del(ctx, failedLoginKeyPrefix+account).Err(); err != nil {
		return apperrors.Wrap(err, "failed to clear login failures")
	}
	return nil
}

// IsLockedOut reports whether the account is currently locked and, if so, for
// how many more seconds.
func (l *RedisRateLimiter) IsLockedOut(
	ctx context.Context,
	account string,
) (locked bool, retryAfter int, err error) {
	ttl, err := l.client.PTTL(ctx, lockedAccountKeyPrefix+account).Result()
	if err != nil {
		return false, 0, apperrors.Wrap(err, "failed to check account lockout")
	}
	if ttl <= 0 {
		return false, 0, nil
	}

	seconds := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		seconds++
	}
	return true, seconds, nil
}

// Unlock clears both the lockout marker and the failure counter for the
// account. Used by the administrative unlock command.
func (l *RedisRateLimiter) Unlock(ctx context.Context, account string) error {
	if err := l.client.Del(
		ctx,
		lockedAccountKeyPrefix+account,
		failedLoginKeyPrefix+account,
	).Err(); err != nil {
		return apperrors.Wrap(err, "failed to unlock account")
	}
	return nil
}
