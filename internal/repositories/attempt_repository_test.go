package repository_test

import (
	"strconv"
	"testing"
	"time"

	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptLimiter_Allow(t *testing.T) {
	userID := uuid.New()
	key := repository.AttemptKey(userID)
	now := time.Unix(1_700_000_100, 0)
	clock := func() time.Time { return now }
	window := time.Minute

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", strconv.FormatInt(now.Unix()-60, 10)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, window).SetVal(true)
	}

	t.Run("Success - Under the limit", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewAttemptLimiter(client, 3, window, clock)
		expectPipeline(mock, 3)

		// Act
		allowed, retryAfter, err := limiter.Allow(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit exceeded", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewAttemptLimiter(client, 3, window, clock)
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now.Unix() - 45), Member: "x"}})

		// Act
		allowed, retryAfter, err := limiter.Allow(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 15*time.Second, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
