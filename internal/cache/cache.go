package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Cache 键值缓存，用于仪表盘等聚合读的透读缓存。
// redis不可用时所有操作降级为未命中/空操作，调用方必须始终能回退到数据库。
type Cache struct {
	rdb *redis.Client
}

// Init 按配置初始化缓存，未启用时返回空客户端缓存
func Init(cfg config.RedisConfig) *Cache {
	if !cfg.Enabled {
		logger.Warn("Redis not configured, caching will be disabled")
		return &Cache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Error("Redis connection error: %v", err)
		// 连接失败不阻塞启动，后续请求直接走数据库
	} else {
		logger.Info("Redis connected: %s", cfg.Addr)
	}

	return &Cache{rdb: rdb}
}

// New 使用已有客户端创建缓存
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get 读取缓存并反序列化到dest，返回是否命中
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error("Redis get error: %v", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Error("Failed to unmarshal cached value for %s: %v", key, err)
		return false
	}

	return true
}

// Set 序列化并写入缓存，带过期时间
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	if c.rdb == nil {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to marshal value for %s: %v", key, err)
		return false
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Redis set error: %v", err)
		return false
	}

	return true
}

// Del 删除缓存键
func (c *Cache) Del(ctx context.Context, key string) bool {
	if c.rdb == nil {
		return false
	}

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Error("Redis delete error: %v", err)
		return false
	}

	return true
}

// Close 关闭redis连接
func (c *Cache) Close() {
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			logger.Error("Failed to close redis client: %v", err)
		}
	}
}
