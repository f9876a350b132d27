package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:           "db.internal",
		Port:           5432,
		User:           "nomad",
		Password:       "s3cret",
		Name:           "trips",
		SSLMode:        "disable",
		MaxConnections: 25,
		MinConnections: 5,
		ConnMaxLife:    "1h",
	}
}

func TestConfigurePostgresPool(t *testing.T) {
	t.Run("uses configured sizes", func(t *testing.T) {
		t.Setenv("K_SERVICE", "")

		cfg, err := ConfigurePostgresPool(testDatabaseConfig())
		require.NoError(t, err)
		assert.Equal(t, int32(25), cfg.MaxConns)
		assert.Equal(t, int32(5), cfg.MinConns)
		assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
		assert.Equal(t, "nomad", cfg.ConnConfig.User)
		assert.Equal(t, "trips", cfg.ConnConfig.Database)
		assert.Equal(t, 30*time.Second, cfg.HealthCheckPeriod)
	})

	t.Run("serverless clamps the pool", func(t *testing.T) {
		t.Setenv("K_SERVICE", "nomad-itinerary")

		cfg, err := ConfigurePostgresPool(testDatabaseConfig())
		require.NoError(t, err)
		assert.Equal(t, int32(serverlessMaxConns), cfg.MaxConns)
		assert.Equal(t, int32(serverlessMinConns), cfg.MinConns)
		assert.Equal(t, serverlessMaxConnLife, cfg.MaxConnLifetime)
	})

	t.Run("min never exceeds max", func(t *testing.T) {
		t.Setenv("K_SERVICE", "")
		dbCfg := testDatabaseConfig()
		dbCfg.MaxConnections = 3
		dbCfg.MinConnections = 8

		cfg, err := ConfigurePostgresPool(dbCfg)
		require.NoError(t, err)
		assert.Equal(t, int32(3), cfg.MinConns)
	})

	t.Run("invalid port", func(t *testing.T) {
		dbCfg := testDatabaseConfig()
		dbCfg.Port = -1

		_, err := ConfigurePostgresPool(dbCfg)
		assert.Error(t, err)
	})
}

func TestConfigureRedisOptions(t *testing.T) {
	opts := ConfigureRedisOptions(&RedisConfig{Address: "cache:6379", DB: 2, PoolSize: 20})
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Nil(t, opts.TLSConfig)

	tlsOpts := ConfigureRedisOptions(&RedisConfig{Address: "eu1.upstash.io:6379", UseTLS: true})
	require.NotNil(t, tlsOpts.TLSConfig)
}

func TestPingRedis(t *testing.T) {
	t.Run("succeeds after a retry", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("loading"))
		mock.ExpectPing().SetVal("PONG")

		require.NoError(t, PingRedis(context.Background(), client, 3, time.Millisecond))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("refused"))
		mock.ExpectPing().SetErr(errors.New("refused"))

		err := PingRedis(context.Background(), client, 2, time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 2 attempts")
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("refused"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := PingRedis(ctx, client, 3, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
