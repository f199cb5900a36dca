package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Desktop   DesktopConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Hooks     HookConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// AllowOrigins lists the origins desktop views may be served from
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// DesktopConfig holds window manager configuration.
type DesktopConfig struct {
	FallbackWidth  int    `envconfig:"DESKTOP_FALLBACK_WIDTH" default:"1920"`
	FallbackHeight int    `envconfig:"DESKTOP_FALLBACK_HEIGHT" default:"1080"`
	CascadeStep    int    `envconfig:"DESKTOP_CASCADE_STEP" default:"5"`
	AppsDir        string `envconfig:"DESKTOP_APPS_DIR" default:"./apps"`
	OptionsFile    string `envconfig:"DESKTOP_OPTIONS_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// HookConfig holds scripted lifecycle hook configuration.
type HookConfig struct {
	Timeout time.Duration `envconfig:"HOOK_TIMEOUT" default:"2s"`
	Console bool          `envconfig:"HOOK_CONSOLE" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the desktop cannot run with.
func (c *Config) Validate() error {
	if c.Desktop.FallbackWidth <= 0 || c.Desktop.FallbackHeight <= 0 {
		return fmt.Errorf("invalid fallback bounds %dx%d", c.Desktop.FallbackWidth, c.Desktop.FallbackHeight)
	}
	if c.Desktop.CascadeStep < 0 {
		return fmt.Errorf("invalid cascade step %d", c.Desktop.CascadeStep)
	}
	if c.Hooks.Timeout <= 0 {
		return fmt.Errorf("invalid hook timeout %s", c.Hooks.Timeout)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			Host:         "0.0.0.0",
			AllowOrigins: []string{"*"},
		},
		Desktop: DesktopConfig{
			FallbackWidth:  1920,
			FallbackHeight: 1080,
			CascadeStep:    5,
			AppsDir:        "./apps",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Hooks: HookConfig{
			Timeout: 2 * time.Second,
			Console: true,
		},
	}
}
