package cache

import (
  "context"
  "encoding/json"
  "sync"

  goredis "github.com/redis/go-redis/v9"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

// ComparisonCache stores comparison results by their sorted-identifier key.
// Entries are never invalidated; the catalog they derive from is immutable.
type ComparisonCache interface {
  Get(ctx context.Context, key string) (*types.ComparisonResult, bool)
  Set(ctx context.Context, key string, result *types.ComparisonResult)
}

type memoryComparisonCache struct {
  mu      sync.RWMutex
  entries map[string]*types.ComparisonResult
}

func NewMemoryComparisonCache() ComparisonCache {
  return &memoryComparisonCache{entries: make(map[string]*types.ComparisonResult)}
}

func (c *memoryComparisonCache) Get(ctx context.Context, key string) (*types.ComparisonResult, bool) {
  c.mu.RLock()
  defer c.mu.RUnlock()
  result, ok := c.entries[key]
  return result, ok
}

func (c *memoryComparisonCache) Set(ctx context.Context, key string, result *types.ComparisonResult) {
  c.mu.Lock()
  defer c.mu.Unlock()
  c.entries[key] = result
}

type redisComparisonCache struct {
  rdb *goredis.Client
  log *logger.Logger
}

func NewRedisComparisonCache(rdb *goredis.Client, log *logger.Logger) ComparisonCache {
  return &redisComparisonCache{rdb: rdb, log: log.With("cache", "RedisComparisonCache")}
}

func (c *redisComparisonCache) Get(ctx context.Context, key string) (*types.ComparisonResult, bool) {
  raw, err := c.rdb.Get(ctx, "comparison:"+key).Bytes()
  if err != nil {
    if err != goredis.Nil {
      c.log.Warn("Comparison cache read failed", "key", key, "error", err)
    }
    return nil, false
  }
  var result types.ComparisonResult
  if err := json.Unmarshal(raw, &result); err != nil {
    c.log.Warn("Comparison cache entry malformed", "key", key, "error", err)
    return nil, false
  }
  return &result, true
}

func (c *redisComparisonCache) Set(ctx context.Context, key string, result *types.ComparisonResult) {
  raw, err := json.Marshal(result)
  if err != nil {
    c.log.Warn("Comparison cache encode failed", "key", key, "error", err)
    return
  }
  if err := c.rdb.Set(ctx, "comparison:"+key, raw, 0).Err(); err != nil {
    c.log.Warn("Comparison cache write failed", "key", key, "error", err)
  }
}
