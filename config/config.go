// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// StoreBackend selects where raw trip documents are read from.
type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreSupabase StoreBackend = "supabase"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// StoreConfig picks the trip document backend.
type StoreConfig struct {
	Backend StoreBackend `mapstructure:"BACKEND" yaml:"backend"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host           string `mapstructure:"HOST" yaml:"host"`
	Port           int    `mapstructure:"PORT" yaml:"port"`
	User           string `mapstructure:"USER" yaml:"user"`
	Password       string `mapstructure:"PASSWORD" yaml:"password"`
	Name           string `mapstructure:"NAME" yaml:"name"`
	SSLMode        string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxConnections int    `mapstructure:"MAX_CONNECTIONS" yaml:"max_connections"`
	MinConnections int    `mapstructure:"MIN_CONNECTIONS" yaml:"min_connections"`
	ConnMaxLife    string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
	RunMigrations  bool   `mapstructure:"RUN_MIGRATIONS" yaml:"run_migrations"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and pgxpool.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// ConnMaxLifetime parses ConnMaxLife, falling back to one hour.
func (c *DatabaseConfig) ConnMaxLifetime() time.Duration {
	d, err := time.ParseDuration(c.ConnMaxLife)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// SupabaseConfig holds the PostgREST endpoint used when Store.Backend is supabase.
type SupabaseConfig struct {
	URL        string `mapstructure:"URL" yaml:"url"`
	ServiceKey string `mapstructure:"SERVICE_KEY" yaml:"service_key"`
	Table      string `mapstructure:"TABLE" yaml:"table"`
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// CacheConfig controls the Redis cache of assembled trips.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"ENABLED" yaml:"enabled"`
	TTLSeconds int    `mapstructure:"TTL_SECONDS" yaml:"ttl_seconds"`
	KeyPrefix  string `mapstructure:"KEY_PREFIX" yaml:"key_prefix"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SnapshotConfig controls the Redis pub/sub listener for document snapshots.
type SnapshotConfig struct {
	Enabled        bool   `mapstructure:"ENABLED" yaml:"enabled"`
	ChannelPattern string `mapstructure:"CHANNEL_PATTERN" yaml:"channel_pattern"`
	BufferSize     int    `mapstructure:"BUFFER_SIZE" yaml:"buffer_size"`
	// MaxTrackedTrips caps the per-trip sequences remembered for ordering.
	MaxTrackedTrips int `mapstructure:"MAX_TRACKED_TRIPS" yaml:"max_tracked_trips"`
	// Persist writes received snapshots through to the document store.
	Persist bool `mapstructure:"PERSIST" yaml:"persist"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	Store     StoreConfig    `mapstructure:"STORE" yaml:"store"`
	Database  DatabaseConfig `mapstructure:"DATABASE" yaml:"database"`
	Supabase  SupabaseConfig `mapstructure:"SUPABASE" yaml:"supabase"`
	Redis     RedisConfig    `mapstructure:"REDIS" yaml:"redis"`
	Cache     CacheConfig    `mapstructure:"CACHE" yaml:"cache"`
	Snapshots SnapshotConfig `mapstructure:"SNAPSHOTS" yaml:"snapshots"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// NeedsRedis reports whether any enabled component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Cache.Enabled || c.Snapshots.Enabled
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("STORE.BACKEND", StorePostgres)
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "nomad_itinerary")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 10)
	v.SetDefault("DATABASE.MIN_CONNECTIONS", 1)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("DATABASE.RUN_MIGRATIONS", true)
	v.SetDefault("SUPABASE.TABLE", "trip_documents")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("CACHE.ENABLED", false)
	v.SetDefault("CACHE.TTL_SECONDS", 300)
	v.SetDefault("CACHE.KEY_PREFIX", "trips:assembled:")
	v.SetDefault("SNAPSHOTS.ENABLED", false)
	v.SetDefault("SNAPSHOTS.CHANNEL_PATTERN", "trips:snapshots:*")
	v.SetDefault("SNAPSHOTS.BUFFER_SIZE", 100)
	v.SetDefault("SNAPSHOTS.MAX_TRACKED_TRIPS", 10000)
	v.SetDefault("SNAPSHOTS.PERSIST", false)
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Store selection
		{"STORE.BACKEND", "STORE_BACKEND"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		{"DATABASE.RUN_MIGRATIONS", "DB_RUN_MIGRATIONS"},
		// Supabase
		{"SUPABASE.URL", "SUPABASE_URL"},
		{"SUPABASE.SERVICE_KEY", "SUPABASE_SERVICE_KEY"},
		{"SUPABASE.TABLE", "SUPABASE_TABLE"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Cache and snapshots
		{"CACHE.ENABLED", "CACHE_ENABLED"},
		{"CACHE.TTL_SECONDS", "CACHE_TTL_SECONDS"},
		{"SNAPSHOTS.ENABLED", "SNAPSHOTS_ENABLED"},
		{"SNAPSHOTS.CHANNEL_PATTERN", "SNAPSHOTS_CHANNEL_PATTERN"},
		{"SNAPSHOTS.BUFFER_SIZE", "SNAPSHOTS_BUFFER_SIZE"},
		{"SNAPSHOTS.MAX_TRACKED_TRIPS", "SNAPSHOTS_MAX_TRACKED_TRIPS"},
		{"SNAPSHOTS.PERSIST", "SNAPSHOTS_PERSIST"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"store_backend", v.GetString("STORE.BACKEND"),
		"cache_enabled", v.GetBool("CACHE.ENABLED"),
		"snapshots_enabled", v.GetBool("SNAPSHOTS.ENABLED"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	switch cfg.Store.Backend {
	case StorePostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
		if cfg.Database.Password == "" {
			log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
		}
	case StoreSupabase:
		if cfg.Supabase.URL == "" {
			return fmt.Errorf("supabase URL is required")
		}
		if _, err := url.ParseRequestURI(cfg.Supabase.URL); err != nil {
			return fmt.Errorf("invalid supabase URL: %w", err)
		}
		if cfg.Supabase.ServiceKey == "" {
			return fmt.Errorf("supabase service key is required")
		}
		if cfg.Supabase.Table == "" {
			return fmt.Errorf("supabase table is required")
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.NeedsRedis() && cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required when cache or snapshots are enabled")
	}
	if cfg.Cache.Enabled && cfg.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	if cfg.Snapshots.Enabled && cfg.Snapshots.ChannelPattern == "" {
		return fmt.Errorf("snapshot channel pattern is required")
	}
	if cfg.Snapshots.Enabled && cfg.Snapshots.BufferSize <= 0 {
		return fmt.Errorf("snapshot buffer size must be positive")
	}
	if cfg.Snapshots.Persist && cfg.Store.Backend != StorePostgres {
		log.Warn("Snapshot persistence requires the postgres backend, disabling it")
		cfg.Snapshots.Persist = false
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
