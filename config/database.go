package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// NewPgxPool opens a pgx v5 pool for cfg and verifies it with a ping.
func NewPgxPool(ctx context.Context, cfg *DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := ConfigurePostgresPool(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// InitRedis creates a Redis client and waits for it to answer a ping.
func InitRedis(config *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(ConfigureRedisOptions(config))

	if err := PingRedis(context.Background(), client, 5, 2*time.Second); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// MaskSensitiveURL hides credentials in a connection URL so it can be logged.
func MaskSensitiveURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil || u.Host == "" {
		return "invalid-url-format"
	}
	masked := u.Scheme + "://*****:*****@" + u.Host + u.Path
	if u.RawQuery != "" {
		masked += "?" + u.RawQuery
	}
	return masked
}
