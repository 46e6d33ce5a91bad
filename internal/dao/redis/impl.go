// This file provides the Redis implementation of CacheService.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"your_chores_server/pkg/errorx"
)

// RedisCache implements both CacheService and AsyncCacheService, so
// consumers can declare the narrowest interface they need.
type RedisCache struct {
	client   *redis.Client
	taskChan chan func()
}

// NewRedisCache creates the cache service and starts its worker pool.
func NewRedisCache(client *redis.Client, workerNum, taskChanSize int) *RedisCache {
	rc := &RedisCache{
		client:   client,
		taskChan: make(chan func(), taskChanSize),
	}
	for i := 0; i < workerNum; i++ {
		go rc.startWorker()
	}
	zap.L().Info("redis cache workers started",
		zap.Int("workers", workerNum), zap.Int("buffer", taskChanSize))
	return rc
}

// startWorker runs a single consumer loop, restarting itself on panic.
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

// SubmitTask queues an action, degrading to synchronous execution when
// the queue is full.
func (r *RedisCache) SubmitTask(action func()) {
	select {
	case r.taskChan <- action:
	default:
		zap.L().Warn("redis cache task channel full, executing synchronously")
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
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis delete key %s", key)
	}
	return nil
}
