package redis

import (
	"strconv"

	"github.com/Phadec/Harmony-Chat-sub000/internal/config"

	"github.com/redis/go-redis/v9"
)

var cacheService AsyncCacheService

// Init connects to Redis using the loaded configuration and starts the
// cache worker pool.
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.Db,
		PoolSize:     50,
		MinIdleConns: 15,
	})

	cacheService = NewRedisCache(client, 15, 3000)
}

// GetCacheService returns the shared cache instance. It is nil until Init
// runs; callers treat a nil cache as "caching disabled".
func GetCacheService() AsyncCacheService {
	return cacheService
}
