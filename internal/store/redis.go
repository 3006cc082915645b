package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/weather-charts/internal/weather"
)

const redisKeyPrefix = "weather-charts:readings:"

// RedisStore caches readings as JSON in Redis, letting keys expire after ttl.
// It allows several server instances to share one cache.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStore) SaveReadings(ctx context.Context, loc weather.Location, days int, readings weather.HourlyReadings) error {
	payload, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("encode readings: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+cacheKey(loc, days), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) GetReadings(ctx context.Context, loc weather.Location, days int) (weather.HourlyReadings, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+cacheKey(loc, days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return weather.HourlyReadings{}, ErrNotFound
	}
	if err != nil {
		return weather.HourlyReadings{}, fmt.Errorf("redis get: %w", err)
	}

	var readings weather.HourlyReadings
	if err := json.Unmarshal(payload, &readings); err != nil {
		return weather.HourlyReadings{}, fmt.Errorf("decode readings: %w", err)
	}
	return readings, nil
}
