package backend

import (
	"Storefront/models"
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const inventoryKey = "inventory"

// InventoryCache serves the inventory list, falling back to load on a miss.
type InventoryCache interface {
	Inventory(ctx context.Context, load func(context.Context) ([]models.InventoryItem, error)) ([]models.InventoryItem, error)
	Invalidate(ctx context.Context) error
}

// RedisInventoryCache keeps the inventory as a sorted set scored by id.
type RedisInventoryCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisInventoryCache(client *redis.Client, logger *zap.Logger) *RedisInventoryCache {
	return &RedisInventoryCache{client: client, logger: logger}
}

func (r *RedisInventoryCache) Inventory(ctx context.Context, load func(context.Context) ([]models.InventoryItem, error)) ([]models.InventoryItem, error) {
	// read through: a miss or a Redis error reloads the list from the store
	members, err := r.client.ZRange(ctx, inventoryKey, 0, -1).Result()
	if err == nil && len(members) > 0 {
		items := make([]models.InventoryItem, 0, len(members))
		for _, member := range members {
			var item models.InventoryItem
			if err := json.Unmarshal([]byte(member), &item); err != nil {
				r.logger.Warn("decode cached inventory item", zap.Error(err))
				continue
			}
			items = append(items, item)
		}
		return items, nil
	}
	if err != nil {
		r.logger.Warn("read inventory cache", zap.Error(err))
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, items)
	return items, nil
}

func (r *RedisInventoryCache) fill(ctx context.Context, items []models.InventoryItem) {
	if err := r.client.Del(ctx, inventoryKey).Err(); err != nil {
		r.logger.Warn("reset inventory cache", zap.Error(err))
		return
	}

	members := make([]redis.Z, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			r.logger.Warn("encode inventory item", zap.Int("id", item.ID), zap.Error(err))
			continue
		}
		members = append(members, redis.Z{Score: float64(item.ID), Member: payload})
	}
	if len(members) == 0 {
		return
	}
	if err := r.client.ZAdd(ctx, inventoryKey, members...).Err(); err != nil {
		r.logger.Warn("fill inventory cache", zap.Error(err))
	}
}

func (r *RedisInventoryCache) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, inventoryKey).Err()
}

// NoCache always loads from the store.
type NoCache struct{}

func (NoCache) Inventory(ctx context.Context, load func(context.Context) ([]models.InventoryItem, error)) ([]models.InventoryItem, error) {
	return load(ctx)
}

func (NoCache) Invalidate(context.Context) error { return nil }
