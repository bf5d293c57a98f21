package cache

import (
	"Storefront/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 24 * time.Hour
)

// CartKey is the store key holding a session's cart snapshot.
func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// RedisCartCache keeps the last known cart of each session in Redis.
type RedisCartCache struct {
	client *redis.Client
}

func NewRedisCartCache(client *redis.Client) *RedisCartCache {
	return &RedisCartCache{client: client}
}

func (r *RedisCartCache) Save(ctx context.Context, sessionID string, cart []models.CartItem) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return r.client.Set(ctx, CartKey(sessionID), payload, cartTTL).Err()
}

// Load returns the snapshot, or an empty cart when none is stored.
func (r *RedisCartCache) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	payload, err := r.client.Get(ctx, CartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart []models.CartItem
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

// Remove deletes the snapshot. A missing key is not an error.
func (r *RedisCartCache) Remove(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, CartKey(sessionID)).Err()
}

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Save(context.Context, string, []models.CartItem) error { return nil }

func (Nop) Load(context.Context, string) ([]models.CartItem, error) {
	return []models.CartItem{}, nil
}

func (Nop) Remove(context.Context, string) error { return nil }
