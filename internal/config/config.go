package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage: postgres or memory
	Store          string `toml:"store"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	// exercise lookups
	ExerciseCacheSizeMB int `toml:"exercise_cache_size_mb"`
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section of env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config [%s]: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Store == "" {
		c.Store = StorePostgres
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.ExerciseCacheSizeMB == 0 {
		c.ExerciseCacheSizeMB = 1
	}
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return fmt.Errorf("postgres store needs postgres_host, postgres_port and postgres_db_name")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store [%s]", c.Store)
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid port [%d]", c.Port)
	}
	return nil
}
