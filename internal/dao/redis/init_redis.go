// This file contains the Redis connection initialization.
package redis

import (
	"strconv"

	"your_chores_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init creates the Redis client from configuration and returns the
// cache service.
func Init() AsyncCacheService {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// pool sizing matches the worker count
		PoolSize:     20,
		MinIdleConns: 5,
	})

	return NewRedisCache(client, 5, 1000)
}
