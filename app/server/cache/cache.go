package cache

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"time"
)

// Cache 是对 Redis 的 JSON 读写封装。 rdb 为 nil 时所有操作都直接跳过，
// 读取永远未命中，所以调用方不需要区分有没有配置 Redis 。
type Cache struct {
	rdb *redis.Client
	l   *zap.Logger
}

func New(rdb *redis.Client, l *zap.Logger) *Cache {
	return &Cache{rdb: rdb, l: l}
}

// GetJSON 命中并成功解析时返回 true
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	cacheBytes, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.l.Error("failed to query cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err = json.Unmarshal(cacheBytes, v); err != nil {
		c.l.Error("failed to unmarshal cache", zap.String("key", key), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		c.rdb.Del(ctx, key)
		return false
	}

	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, expiration time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}

	cacheBytes, err := json.Marshal(v)
	if err != nil {
		c.l.Error("failed to marshal cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err = c.rdb.Set(ctx, key, cacheBytes, expiration).Err(); err != nil {
		c.l.Error("failed to set cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.l.Error("failed to delete cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
