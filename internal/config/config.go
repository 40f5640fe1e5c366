// Package config loads CLI defaults from the environment.
//
// Variables are read with the REQCHECK_ prefix (a `.env` file in the working
// directory is loaded first, if present), mapped onto Config and validated.
// Command line flags override every value loaded here.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "REQCHECK_"

// Config is the CLI configuration.
//
// REQCHECK_SPEC -> spec, REQCHECK_MAX_BODY_SIZE -> max_body_size, and so on.
type Config struct {
	Spec          string        `koanf:"spec"`
	RaiseOnError  bool          `koanf:"raise_on_error"`
	IgnoreServers bool          `koanf:"ignore_servers"`
	MaxBodySize   int64         `koanf:"max_body_size" validate:"gte=0"`
	MaxFileSize   int64         `koanf:"max_file_size" validate:"gte=0"`
	HTTPTimeout   time.Duration `koanf:"http_timeout" validate:"gt=0"`
	LogLevel      string        `koanf:"log_level" validate:"required,oneof=trace debug info warn error"`
	LogFormat     string        `koanf:"log_format" validate:"required,oneof=console json"`
}

// Default returns the configuration used when no variable is set
func Default() *Config {
	return &Config{
		MaxBodySize: 10 << 20,
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// Load reads REQCHECK_* variables on top of Default and validates the result
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
