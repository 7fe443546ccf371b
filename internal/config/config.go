// Package config loads service settings from defaults overridden by
// environment variables.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds every runtime setting of the cookbook service.
type Config struct {
	Port             int     `koanf:"port" validate:"min=1,max=65535"`
	LogLevel         string  `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat        string  `koanf:"log_format" validate:"oneof=json text"`
	SuggestThreshold float64 `koanf:"suggest_threshold" validate:"gte=0,lte=1"`
	SummaryCacheSize int     `koanf:"summary_cache_size" validate:"gte=0"`
}

// Default returns the settings used when no environment override is present.
func Default() Config {
	return Config{
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        "json",
		SuggestThreshold: 0.8,
		SummaryCacheSize: 256,
	}
}

// envKeys maps the environment variables we read to config keys. Anything
// not listed is ignored.
var envKeys = map[string]string{
	"PORT":               "port",
	"LOG_LEVEL":          "log_level",
	"LOG_FORMAT":         "log_format",
	"SUGGEST_THRESHOLD":  "suggest_threshold",
	"SUMMARY_CACHE_SIZE": "summary_cache_size",
}

// Load reads the defaults, applies environment overrides and validates the
// result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
