package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Timezone    string `toml:"timezone"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// remote plan service
	PlanServiceURL     string   `toml:"plan_service_url"`
	PlanServiceTimeout Duration `toml:"plan_service_timeout"`
	// plan cache: memory | redis | none
	CacheBackend string   `toml:"cache_backend"`
	CacheTTL     Duration `toml:"cache_ttl"`
	CacheSizeMB  int      `toml:"cache_size_mb"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	AllowedOrigins         []string `toml:"allowed_origins"`
}

// Duration lets TOML carry values like "5s" or "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
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
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] section in config", env)
	}
	cfg.Environment = env
	return cfg, nil
}

func Load(env, configPath string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(configPath, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", configPath, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9100
	}
	if c.PlanServiceURL == "" {
		c.PlanServiceURL = "http://localhost:8000"
	}
	if c.PlanServiceTimeout.Duration == 0 {
		c.PlanServiceTimeout.Duration = 10 * time.Second
	}
	if c.CacheBackend == "" {
		c.CacheBackend = "memory"
	}
	if c.CacheTTL.Duration == 0 {
		c.CacheTTL.Duration = 10 * time.Minute
	}
	if c.CacheSizeMB == 0 {
		c.CacheSizeMB = 32
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 30
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case "memory", "none":
	case "redis":
		if c.RedisHost == "" || c.RedisPort == "" {
			return fmt.Errorf("cache backend redis needs redis_host and redis_port")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.CacheBackend)
	}
	// freecache expires in whole seconds and keeps anything below one forever
	if c.CacheTTL.Duration < time.Second {
		return fmt.Errorf("cache_ttl must be at least 1s, got %s", c.CacheTTL.Duration)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// Location is the zone in which "today" is evaluated.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
