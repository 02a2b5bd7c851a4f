package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Storage
	MongodbURL      string `envconfig:"MONGODB_URL" required:"true"`
	MongodbDatabase string `envconfig:"MONGODB_DATABASE" default:"songcatalog"`
	ConnectAttempts uint   `envconfig:"MONGODB_CONNECT_ATTEMPTS" default:"5"`

	// Cache; an empty VALKEY_URL selects the in-process cache
	ValkeyURL     string        `envconfig:"VALKEY_URL"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	CacheMaxItems int           `envconfig:"CACHE_MAX_ITEMS" default:"1000"`

	// Dashboard
	StatsDefaultTopN int `envconfig:"STATS_DEFAULT_TOP_N" default:"5"`
	StatsMaxTopN     int `envconfig:"STATS_MAX_TOP_N" default:"50"`

	// Mutating routes
	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express
func (c *Config) Validate() error {
	if c.MongodbURL == "" {
		return fmt.Errorf("MONGODB_URL is required")
	}
	if c.ConnectAttempts == 0 {
		return fmt.Errorf("MONGODB_CONNECT_ATTEMPTS must be at least 1")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL cannot be negative")
	}
	if c.CacheMaxItems <= 0 {
		return fmt.Errorf("CACHE_MAX_ITEMS must be positive")
	}
	if c.StatsMaxTopN <= 0 {
		return fmt.Errorf("STATS_MAX_TOP_N must be positive")
	}
	if c.StatsDefaultTopN <= 0 || c.StatsDefaultTopN > c.StatsMaxTopN {
		return fmt.Errorf("STATS_DEFAULT_TOP_N must be between 1 and %d", c.StatsMaxTopN)
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// UseValkey reports whether a Valkey server is configured
func (c *Config) UseValkey() bool {
	return c.ValkeyURL != ""
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
