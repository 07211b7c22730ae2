package core

import (
	"strings"
	"time"
)

type IdentityConfig struct {
	BaseURL        string        `koanf:"base_url" mapstructure:"base_url"`
	APIKey         string        `koanf:"api_key" mapstructure:"api_key"`
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" mapstructure:"driver"`
	DSN    string `koanf:"dsn" mapstructure:"dsn"`
	Debug  bool   `koanf:"debug" mapstructure:"debug"`
}

type Config struct {
	ServiceName string         `koanf:"service_name" mapstructure:"service_name"`
	Identity    IdentityConfig `koanf:"identity" mapstructure:"identity"`
	Storage     StorageConfig  `koanf:"storage" mapstructure:"storage"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "jobdeck",
		Identity: IdentityConfig{
			RequestTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
		},
	}
}

// Validate enforces the startup contract: a missing identity endpoint or API
// key is fatal, not a per-request condition.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return NewConfigurationError("core: service_name is required")
	}
	if strings.TrimSpace(c.Identity.BaseURL) == "" {
		return NewConfigurationError("core: identity.base_url is required")
	}
	if strings.TrimSpace(c.Identity.APIKey) == "" {
		return NewConfigurationError("core: identity.api_key is required")
	}
	if c.Identity.RequestTimeout < 0 {
		return NewConfigurationError("core: identity.request_timeout must not be negative")
	}
	if strings.TrimSpace(c.Storage.Driver) == "" {
		return NewConfigurationError("core: storage.driver is required")
	}
	return nil
}
