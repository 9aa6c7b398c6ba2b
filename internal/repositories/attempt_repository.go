package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AttemptLimiter bounds how many coupon codes one user may try within a sliding window.
type AttemptLimiter interface {
	Allow(ctx context.Context, userID uuid.UUID) (allowed bool, retryAfter time.Duration, err error)
}

type attemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	now         func() time.Time
}

// NewAttemptLimiter builds the limiter; a nil now uses the wall clock.
func NewAttemptLimiter(client *redis.Client, maxAttempts int64, window time.Duration, now func() time.Time) AttemptLimiter {
	if now == nil {
		now = time.Now
	}

	return &attemptLimiter{client: client, maxAttempts: maxAttempts, window: window, now: now}
}

func AttemptKey(userID uuid.UUID) string {
	return "coupon_attempts:" + userID.String()
}

// Allow records the attempt in a sorted set scored by unix time and counts
// the attempts still inside the window.
func (l *attemptLimiter) Allow(ctx context.Context, userID uuid.UUID) (bool, time.Duration, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := AttemptKey(userID)
	at := l.now()
	now := at.Unix()
	windowStart := now - int64(l.window.Seconds())

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: strconv.FormatInt(at.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis pipeline error for coupon attempts: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.maxAttempts {
		return true, 0, nil
	}

	scores, err := l.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
	if err != nil {
		return false, l.window, fmt.Errorf("failed to get oldest coupon attempt: %w", err)
	}

	if len(scores) == 0 {
		return false, l.window, nil
	}

	retryAfter := max(int64(scores[0].Score)+int64(l.window.Seconds())-now, 0)

	logger.Warn("Coupon attempt limit exceeded", slog.String("user_id", userID.String()), slog.Int64("attempts", attempts))

	return false, time.Duration(retryAfter) * time.Second, nil
}
