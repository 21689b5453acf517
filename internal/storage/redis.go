package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nikolayk812/carrito/internal/port"
)

type redisStorage struct {
	client *redis.Client
}

// NewRedis backs the cart with plain redis strings, one key per cart.
func NewRedis(client *redis.Client) (port.CartStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return &redisStorage{client: client}, nil
}

func (s *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (s *redisStorage) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	// Carts survive page reloads indefinitely, so no TTL.
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (s *redisStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
