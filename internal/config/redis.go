package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds a client from env and pings it.
func ConnectRedis(ctx context.Context, env Env) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Username: env.RedisUser,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Println("config: connected to Redis:", res)
	return rdb, nil
}
