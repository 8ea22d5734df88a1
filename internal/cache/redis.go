package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches flight reads. Seat counts change on every booking, so
// entries are short-lived and dropped by InvalidateFlights after each
// committed booking or cancellation.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	ok, err := c.get(ctx, flightsKey(), &flights)
	if err != nil || !ok {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.set(ctx, flightsKey(), flights)
}

func (c *RedisCache) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	ok, err := c.get(ctx, flightKey(id), &flight)
	if err != nil || !ok {
		return nil, err
	}
	return &flight, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	return c.set(ctx, flightKey(flight.ID), flight)
}

// InvalidateFlights drops the flights list and the entry of flightID.
func (c *RedisCache) InvalidateFlights(ctx context.Context, flightID int64) error {
	return c.client.Del(ctx, flightsKey(), flightKey(flightID)).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func flightKey(id int64) string {
	return fmt.Sprintf("cache:flight:%d", id)
}
