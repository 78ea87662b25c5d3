package repositories

import (
	"context"
	"errors"
	"fmt"

	"envy/internal/store"

	"github.com/redis/go-redis/v9"
)

// RedisStateRepository keeps the aggregate under a single Redis string key with no expiry.
type RedisStateRepository struct {
	Client *redis.Client
	Key    string
}

func NewRedisStateRepository(client *redis.Client, key string) RedisStateRepository {
	if key == "" {
		key = store.DefaultStorageKey
	}
	return RedisStateRepository{Client: client, Key: key}
}

func (r RedisStateRepository) Load(ctx context.Context) ([]byte, error) {
	if r.Client == nil {
		return nil, errors.New("redis: no client")
	}
	raw, err := r.Client.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Key, err)
	}
	return raw, nil
}

func (r RedisStateRepository) Save(ctx context.Context, raw []byte) error {
	if r.Client == nil {
		return errors.New("redis: no client")
	}
	if err := r.Client.Set(ctx, r.Key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", r.Key, err)
	}
	return nil
}

func (r RedisStateRepository) Clear(ctx context.Context) error {
	if r.Client == nil {
		return errors.New("redis: no client")
	}
	if err := r.Client.Del(ctx, r.Key).Err(); err != nil {
		return fmt.Errorf("clear %s: %w", r.Key, err)
	}
	return nil
}

func (r RedisStateRepository) Driver() string { return "redis" }

func (r RedisStateRepository) Ping(ctx context.Context) error {
	if r.Client == nil {
		return errors.New("redis: no client")
	}
	return r.Client.Ping(ctx).Err()
}
