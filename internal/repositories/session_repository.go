package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionRepository persists the part of a cart session that outlives it.
type SessionRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (*models.SessionSnapshot, error)
	Save(ctx context.Context, snapshot *models.SessionSnapshot) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepo(client *redis.Client, ttl time.Duration) SessionRepository {
	return &sessionRepository{client: client, ttl: ttl}
}

func SessionKey(userID uuid.UUID) string {
	return "cart_session:" + userID.String()
}

// Load returns nil without error when nothing was saved.
func (r *sessionRepository) Load(ctx context.Context, userID uuid.UUID) (*models.SessionSnapshot, error) {
	data, err := r.client.Get(ctx, SessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load session %s: %w", userID, err)
	}

	var snapshot models.SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", userID, err)
	}

	return &snapshot, nil
}

func (r *sessionRepository) Save(ctx context.Context, snapshot *models.SessionSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", snapshot.UserID, err)
	}

	if err := r.client.Set(ctx, SessionKey(snapshot.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", snapshot.UserID, err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, SessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", userID, err)
	}

	return nil
}
