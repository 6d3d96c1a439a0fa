package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"teamnexus.com/collegeportal/pkg/apperror"
)

// RateLimitError tells the caller how long to wait before retrying.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

// Limiter is a per-user cooldown backed by Redis SETNX keys. A nil Redis
// client disables limiting.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// Allow claims the cooldown slot for action. It returns a *RateLimitError
// when the slot is still held.
func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID, action string, limit time.Duration) error {
	if l == nil || l.rdb == nil || limit <= 0 {
		return nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(userID, action), "locked", limit).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return nil
	}

	ttl, _ := l.rdb.TTL(ctx, key(userID, action)).Result()
	if ttl < 0 {
		ttl = limit
	}
	return &RateLimitError{
		Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
		RetryAfter: ttl,
	}
}

// Clear releases the slot, used when the guarded action failed.
func (l *Limiter) Clear(ctx context.Context, userID uuid.UUID, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(userID, action)).Err()
}
