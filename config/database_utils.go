package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Serverless instances are short-lived, so pools stay small and connections
// are recycled quickly.
const (
	serverlessMaxConns    = 10
	serverlessMinConns    = 2
	serverlessMaxConnLife = 5 * time.Minute
)

// ConfigurePostgresPool builds the pgx pool configuration for the document
// store from cfg, logging only non-sensitive details.
func ConfigurePostgresPool(cfg *DatabaseConfig) (*pgxpool.Config, error) {
	log := logger.GetLogger()

	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config for %s: %w", MaskSensitiveURL(cfg.URL()), err)
	}

	maxConns := cfg.MaxConnections
	minConns := cfg.MinConnections
	maxLife := cfg.ConnMaxLifetime()

	if IsRunningInServerless() {
		if maxConns <= 0 || maxConns > serverlessMaxConns {
			maxConns = serverlessMaxConns
		}
		if minConns > serverlessMinConns {
			minConns = serverlessMinConns
		}
		if maxLife > serverlessMaxConnLife {
			maxLife = serverlessMaxConnLife
		}
		log.Info("Using connection pool settings for serverless environment")
	}

	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}
	if minConns > 0 {
		poolConfig.MinConns = int32(min(minConns, int(poolConfig.MaxConns)))
	}
	poolConfig.MaxConnLifetime = maxLife
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	log.Infow("Configured database connection pool",
		"database", MaskSensitiveURL(cfg.URL()),
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
		"max_conn_lifetime", maxLife.String())

	return poolConfig, nil
}

// IsRunningInServerless reports whether the process runs on Cloud Run, which
// sets K_SERVICE for every revision.
func IsRunningInServerless() bool {
	return os.Getenv("K_SERVICE") != ""
}

// ConfigureRedisOptions builds client options for the cache and snapshot
// listener. Managed providers such as Upstash require TLS.
func ConfigureRedisOptions(cfg *RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: time.Hour,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	logger.GetLogger().Infow("Configuring Redis connection",
		"address", cfg.Address,
		"db", cfg.DB,
		"pool_size", cfg.PoolSize,
		"use_tls", cfg.UseTLS)

	return opts
}

// PingRedis pings client up to attempts times, sleeping delay between tries.
func PingRedis(ctx context.Context, client *redis.Client, attempts int, delay time.Duration) error {
	log := logger.GetLogger()
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			if i > 0 {
				log.Infow("Connected to Redis after retries", "attempt", i+1)
			}
			return nil
		}
		if i == attempts-1 {
			break
		}

		log.Warnw("Failed to ping Redis, retrying",
			"error", err,
			"attempt", i+1,
			"max_attempts", attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed to ping Redis after %d attempts: %w", attempts, err)
}
