package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

const availabilityKeyPrefix = "inventory:availability:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, productID string) (domain.Availability, bool, error) {
	raw, err := c.client.Get(ctx, availabilityKeyPrefix+productID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Availability{}, false, nil
	}
	if err != nil {
		return domain.Availability{}, false, fmt.Errorf("failed to read availability: %w", err)
	}

	var a domain.Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Availability{}, false, fmt.Errorf("failed to decode availability: %w", err)
	}
	return a, true, nil
}

func (c *RedisCache) SetIfAbsent(ctx context.Context, a domain.Availability) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	return c.client.SetNX(ctx, availabilityKeyPrefix+a.ProductID, data, c.ttl).Err()
}

func (c *RedisCache) Set(ctx context.Context, a domain.Availability) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	return c.client.Set(ctx, availabilityKeyPrefix+a.ProductID, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, productID string) error {
	return c.client.Del(ctx, availabilityKeyPrefix+productID).Err()
}
