// Package config loads chesscore settings from an optional file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. CHESSCORE_DEPTH=6 or CHESSCORE_LOG_LEVEL=debug.
const EnvPrefix = "CHESSCORE"

// MaxDepth bounds the configurable search depth.
const MaxDepth = 64

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Depth     int    `mapstructure:"depth"`
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`
	StoreDir  string `mapstructure:"store_dir"` // empty selects the platform data directory
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Depth:     5,
		LogLevel:  "info",
		LogPretty: true,
	}
}

// Load reads settings from path (skipped when empty), then applies
// environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("depth", def.Depth)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_pretty", def.LogPretty)
	v.SetDefault("store_dir", def.StoreDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d not in 1..%d", ErrInvalidConfig, c.Depth, MaxDepth)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
