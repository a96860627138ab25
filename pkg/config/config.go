// Package config loads the runtime configuration of the elements tools.
//
// Load merges, lowest precedence first: built-in defaults, an optional .env
// file next to the YAML file, the YAML file itself and ELEMENTS_-prefixed
// environment variables, where "__" separates sections
// (ELEMENTS_LOG__LEVEL sets log.level). The merged tree is validated before
// it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "ELEMENTS_"

// Frame configures the frame loop.
type Frame struct {
	Interval time.Duration `koanf:"interval" validate:"gt=0"`
}

// Log configures the process logger.
type Log struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
	// File enables a rotated log file in addition to stderr.
	File string `koanf:"file"`
	// Verbose adds stack traces to reported element errors.
	Verbose bool `koanf:"verbose"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"required,hostname_port"`
}

// Config is the merged configuration.
type Config struct {
	Frame   Frame   `koanf:"frame"`
	Log     Log     `koanf:"log"`
	Metrics Metrics `koanf:"metrics"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Frame:   Frame{Interval: time.Second / 60},
		Log:     Log{Level: "info", Format: "console"},
		Metrics: Metrics{Addr: "127.0.0.1:9090"},
	}
}

// Load builds the configuration from path. An empty path or a missing file
// skips the YAML layer; a file that exists but does not parse is an error.
func Load(path string) (*Config, error) {
	dotenv := ".env"
	if path != "" {
		dotenv = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := godotenv.Load(dotenv); err == nil {
		zap.S().Debugw("config dotenv loaded", "file", dotenv)
	}

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			zap.S().Debugw("config yaml not found, using defaults", "file", path)
		} else if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		} else {
			zap.S().Debugw("config yaml loaded", "file", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// envKey maps ELEMENTS_LOG__LEVEL to log.level.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}
