package cache

import (
	"context"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Close() error
}

// Key joins a prefix and its parts with ':'.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

const (
	ProductPriceKeyPrefix  = "product_price"
	FlashSalePageKeyPrefix = "flash_sale_page"
)

// GetOrLoad serves key from the cache, falling back to load and storing its
// result. Cache failures are reported through onErr and never fail the call.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error), onErr func(error)) (T, error) {
	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil && onErr != nil {
		onErr(err)
	}

	if found {
		return cached, nil
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}

	if err := c.Set(ctx, key, fresh, ttl); err != nil && onErr != nil {
		onErr(err)
	}

	return fresh, nil
}
