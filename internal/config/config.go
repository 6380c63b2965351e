package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	AuthModeRemote = "remote"
	AuthModeLocal  = "local"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis (session registry, rate limiting)
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres (activity log)
	ActivityEnabled bool   `toml:"activity_enabled"`
	PostgresHost    string `toml:"postgres_host"`
	PostgresPort    string `toml:"postgres_port"`
	PostgresDBName  string `toml:"postgres_db_name"`

	// remote celebrity API
	APIBaseURL         string `toml:"api_base_url"`
	APITimeoutSeconds  int    `toml:"api_timeout_seconds"`
	APICacheSizeMB     int    `toml:"api_cache_size_mb"`
	APICacheTTLSeconds int    `toml:"api_cache_ttl_seconds"`

	// session
	AuthMode             string `toml:"auth_mode"`
	SessionTTLHours      int    `toml:"session_ttl_hours"`
	CookieSecure         bool   `toml:"cookie_secure"`
	LoginRateLimitPerMin int    `toml:"login_rate_limit_per_min"`
}

func (c *Config) APITimeout() time.Duration {
	if c.APITimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url not set")
	}
	switch c.AuthMode {
	case "":
		c.AuthMode = AuthModeRemote
	case AuthModeRemote, AuthModeLocal:
	default:
		return fmt.Errorf("unknown auth_mode: %s", c.AuthMode)
	}
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML config file and returns the table for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is like Load, but reads the TOML from a string.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Secrets are never kept in the config file.
type Secrets struct {
	SessionSecret     string `env:"ELITESTAR_SESSION_SECRET, required"`
	RedisPassword     string `env:"ELITESTAR_REDIS_PASS"`
	PostgresPassword  string `env:"ELITESTAR_POSTGRES_PASS"`
	SentryDSN         string `env:"SENTRY_DSN"`
	AdminUsername     string `env:"ELITESTAR_ADMIN_USERNAME, default=admin"`
	AdminPasswordHash string `env:"ELITESTAR_ADMIN_PASSWORD_HASH"`
	HoneycombEnabled  bool   `env:"HONEYCOMB_ENABLED, default=false"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}
	return &s, nil
}
