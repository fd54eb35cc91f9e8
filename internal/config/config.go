// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every service knob, loaded once at process start and
// treated as immutable afterwards.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig holds the bearer-token secret required by POST /crawl.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// CrawlConfig governs the retry orchestration around the engine.
type CrawlConfig struct {
	MaxAttempts       int `mapstructure:"max_attempts"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds"`
}

// HeadlessConfig configures the browser engine.
type HeadlessConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	MaxParallel       int  `mapstructure:"max_parallel"`
	NavTimeoutSeconds int  `mapstructure:"nav_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from an optional file plus SCRAPER_* environment
// variables. The auth token is typically supplied as SCRAPER_AUTH_TOKEN.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 11235)
	// Defaulted to empty so AutomaticEnv can fill it during Unmarshal.
	v.SetDefault("auth.token", "")
	v.SetDefault("crawl.max_attempts", 5)
	v.SetDefault("crawl.retry_delay_seconds", 5)
	v.SetDefault("headless.enabled", true)
	v.SetDefault("headless.max_parallel", 4)
	v.SetDefault("headless.nav_timeout_seconds", 180)
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Auth.Token == "" {
		return fmt.Errorf("auth.token must be set")
	}
	if c.Crawl.MaxAttempts <= 0 {
		return fmt.Errorf("crawl.max_attempts must be > 0")
	}
	if c.Crawl.RetryDelaySeconds < 0 {
		return fmt.Errorf("crawl.retry_delay_seconds must be >= 0")
	}
	if c.Headless.Enabled && c.Headless.MaxParallel <= 0 {
		return fmt.Errorf("headless.max_parallel must be > 0 when headless is enabled")
	}
	return nil
}

// RetryDelay returns the inter-attempt delay as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Crawl.RetryDelaySeconds) * time.Second
}

// NavTimeout returns the engine-level navigation ceiling.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Headless.NavTimeoutSeconds) * time.Second
}
