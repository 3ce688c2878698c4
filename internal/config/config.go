package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/BurntSushi/toml"
)

const (
	DefaultProgressionCeilingReps = 10
	DefaultProgressCacheSizeMB    = 8
	DefaultProgressCacheTTL       = 10 * time.Minute

	// freecache refuses entries over 1/1024 of its size; 4 MB holds a one-arm progress series.
	MinProgressCacheSizeMB = 4
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// gym log
	Timezone                string `toml:"timezone"`
	AutoProgression         *bool  `toml:"auto_progression"`
	ProgressionCeilingReps  int    `toml:"progression_ceiling_reps"`
	ProgressCacheSizeMB     int    `toml:"progress_cache_size_mb"`
	ProgressCacheTTLSeconds int    `toml:"progress_cache_ttl_seconds"`
}

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

// Load reads the TOML file at path and returns the config for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
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
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "gymlog"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.AutoProgression == nil {
		enabled := true
		c.AutoProgression = &enabled
	}
	if c.ProgressionCeilingReps == 0 {
		c.ProgressionCeilingReps = DefaultProgressionCeilingReps
	}
	if c.ProgressCacheSizeMB == 0 {
		c.ProgressCacheSizeMB = DefaultProgressCacheSizeMB
	}
	if c.ProgressCacheTTLSeconds == 0 {
		c.ProgressCacheTTLSeconds = int(DefaultProgressCacheTTL.Seconds())
	}
}

func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ProgressionCeilingReps < 0 {
		return fmt.Errorf("invalid progression ceiling reps: %d", c.ProgressionCeilingReps)
	}
	if c.ProgressCacheSizeMB < 0 || c.ProgressCacheTTLSeconds < 0 {
		return fmt.Errorf("invalid progress cache settings: %d MB, %d s", c.ProgressCacheSizeMB, c.ProgressCacheTTLSeconds)
	}
	if c.ProgressCacheSizeMB < MinProgressCacheSizeMB {
		return fmt.Errorf("progress cache too small: %d MB, need at least %d MB", c.ProgressCacheSizeMB, MinProgressCacheSizeMB)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone [%s]: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ProgressCacheTTL() time.Duration {
	return time.Duration(c.ProgressCacheTTLSeconds) * time.Second
}

func (c *Config) AutoProgressionEnabled() bool {
	return c.AutoProgression != nil && *c.AutoProgression
}
