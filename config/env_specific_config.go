package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvType names a deployment environment with its own config file.
type EnvType string

const (
	Development EnvType = "dev"
	Staging     EnvType = "staging"
	Production  EnvType = "production"
)

// LoadConfigForEnv loads config/config.<env>.yaml (or /app/config inside a container).
func LoadConfigForEnv(environment string) (*Config, error) {
	configPath, err := getConfigPath(EnvType(environment))
	if err != nil {
		return nil, err
	}
	return LoadConfigFromFile(configPath)
}

// getConfigPath determines the path to the environment-specific config
func getConfigPath(env EnvType) (string, error) {
	configDir := "config"
	if os.Getenv("CONTAINER") == "true" {
		configDir = "/app/config"
	}

	filename, err := configFilename(env)
	if err != nil {
		return "", err
	}

	path := filepath.Join(configDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("configuration file not found: %s", path)
	}
	return path, nil
}

func configFilename(env EnvType) (string, error) {
	switch env {
	case Development:
		return "config.dev.yaml", nil
	case Staging:
		return "config.staging.yaml", nil
	case Production:
		return "config.prod.yaml", nil
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}
}

// LoadConfigFromFile reads a YAML config file on top of the built-in defaults
// and validates the result. Keys use the yaml tags on Config.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config defaults unmarshal failed: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// CreateConfigTemplateForEnvironment writes a starter config file for env into dir.
func CreateConfigTemplateForEnvironment(dir string, env EnvType) error {
	filename, err := configFilename(env)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(getConfigTemplate(env)), 0644); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}
	return nil
}

// getConfigTemplate returns a config template for the given environment
func getConfigTemplate(env EnvType) string {
	baseTemplate := `# Config for %s environment
server:
  environment: %s
  port: "8080"

store:
  backend: postgres

database:
  host: "${DB_HOST}"
  port: 5432
  user: "${DB_USER}"
  password: "${DB_PASSWORD}"
  name: "${DB_NAME}"
  ssl_mode: "%s"

redis:
  address: "${REDIS_ADDRESS}"

cache:
  enabled: %t
  ttl_seconds: 300

snapshots:
  enabled: %t
  channel_pattern: "trips:snapshots:*"
`

	environment := EnvProduction
	sslMode := "require"
	redisOn := true
	if env == Development {
		environment = EnvDevelopment
		sslMode = "disable"
		redisOn = false
	}

	return fmt.Sprintf(baseTemplate, env, environment, sslMode, redisOn, redisOn)
}
