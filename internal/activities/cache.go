package activities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geo-directory/backend/internal/models"
)

const treeKeyPrefix = "directory:activities:tree:v1:"

// TreeCache stores assembled activity forests per depth ceiling.
type TreeCache interface {
	GetTree(ctx context.Context, maxDepth int) ([]models.ActivityNode, bool, error)
	SetTree(ctx context.Context, maxDepth int, tree []models.ActivityNode) error
	Invalidate(ctx context.Context) error
}

// NoopTreeCache never stores anything; every lookup is a miss.
type NoopTreeCache struct{}

func (NoopTreeCache) GetTree(context.Context, int) ([]models.ActivityNode, bool, error) {
	return nil, false, nil
}
func (NoopTreeCache) SetTree(context.Context, int, []models.ActivityNode) error { return nil }
func (NoopTreeCache) Invalidate(context.Context) error                          { return nil }

// RedisTreeCache keeps JSON-encoded forests in Redis with a TTL.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTreeCache creates a Redis-backed tree cache.
func NewRedisTreeCache(client *redis.Client, ttl time.Duration) *RedisTreeCache {
	return &RedisTreeCache{client: client, ttl: ttl}
}

func treeKey(maxDepth int) string {
	return fmt.Sprintf("%sdepth:%d", treeKeyPrefix, maxDepth)
}

// GetTree returns the cached forest for maxDepth. ok is false on a miss.
func (c *RedisTreeCache) GetTree(ctx context.Context, maxDepth int) ([]models.ActivityNode, bool, error) {
	raw, err := c.client.Get(ctx, treeKey(maxDepth)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var tree []models.ActivityNode
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, false, fmt.Errorf("decode cached tree: %w", err)
	}
	return tree, true, nil
}

// SetTree stores the forest for maxDepth.
func (c *RedisTreeCache) SetTree(ctx context.Context, maxDepth int, tree []models.ActivityNode) error {
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if err := c.client.Set(ctx, treeKey(maxDepth), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops every cached forest. The seed loader calls it after a bulk load.
func (c *RedisTreeCache) Invalidate(ctx context.Context) error {
	keys := make([]string, 0, models.MaxActivityDepth)
	for d := 1; d <= models.MaxActivityDepth; d++ {
		keys = append(keys, treeKey(d))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
