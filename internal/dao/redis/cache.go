// Package redis provides the cache layer behind the service packages.
// Services depend on the CacheService interface rather than the concrete
// client, so tests run with a nil cache and skip caching entirely.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

// CacheService is the synchronous cache surface.
type CacheService interface {
	// Set stores a key with a TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value for key, or "" with a nil error when the key
	// does not exist.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching a glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AsyncCacheService adds non-blocking task submission on top of the
// synchronous operations. Invalidation after a write goes through
// SubmitTask so the request path never waits on Redis.
type AsyncCacheService interface {
	CacheService
	SubmitTask(action func())
}

// RedisCache implements AsyncCacheService over go-redis with a small
// worker pool draining the task channel.
type RedisCache struct {
	client   *redis.Client
	taskChan chan func()
}

// NewRedisCache creates the cache and starts workerNum background workers.
func NewRedisCache(client *redis.Client, workerNum, taskChanSize int) *RedisCache {
	rc := &RedisCache{
		client:   client,
		taskChan: make(chan func(), taskChanSize),
	}
	for i := 0; i < workerNum; i++ {
		go rc.startWorker()
	}
	zap.L().Info("redis cache workers started", zap.Int("workers", workerNum), zap.Int("buffer", taskChanSize))
	return rc
}

func (r *RedisCache) startWorker() {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("redis worker panic", zap.Any("recover", rec))
			go r.startWorker()
		}
	}()
	for task := range r.taskChan {
		if task != nil {
			task()
		}
	}
}

// SubmitTask queues an action for a background worker. When the channel
// is full the action runs synchronously instead of being dropped.
func (r *RedisCache) SubmitTask(action func()) {
	select {
	case r.taskChan <- action:
	default:
		zap.L().Warn("redis task channel full, executing synchronously")
		action()
	}
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis del key %s", key)
	}
	return nil
}

// DeleteByPattern scans instead of using KEYS, so large keyspaces do not
// block the server.
func (r *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return errorx.Wrapf(err, errorx.CodeCacheError, "redis scan pattern %s", pattern)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return errorx.Wrapf(err, errorx.CodeCacheError, "redis del pattern %s", pattern)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
