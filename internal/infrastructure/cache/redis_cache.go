package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"closeouts/internal/domain/closeout"
)

const (
	venuesKey      = "closeouts:reference:venues"
	saleCentersKey = "closeouts:reference:sale_centers"
)

// Redis хранит справочники JSON-строками с TTL.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Redis{client: client}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) GetVenues(ctx context.Context) ([]closeout.Venue, bool, error) {
	return get[[]closeout.Venue](ctx, c.client, venuesKey)
}

func (c *Redis) SetVenues(ctx context.Context, venues []closeout.Venue, ttl time.Duration) error {
	return set(ctx, c.client, venuesKey, venues, ttl)
}

func (c *Redis) GetSaleCenters(ctx context.Context) ([]closeout.SaleCenter, bool, error) {
	return get[[]closeout.SaleCenter](ctx, c.client, saleCentersKey)
}

func (c *Redis) SetSaleCenters(ctx context.Context, centers []closeout.SaleCenter, ttl time.Duration) error {
	return set(ctx, c.client, saleCentersKey, centers, ttl)
}

func get[T any](ctx context.Context, client *redis.Client, key string) (T, bool, error) {
	var value T

	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// set с ttl == 0 ничего не пишет: нулевой TTL означает выключенный кэш.
func set[T any](ctx context.Context, client *redis.Client, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
