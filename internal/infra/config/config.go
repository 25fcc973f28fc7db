// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Library     LibraryConfig     `yaml:"library"`
	Player      PlayerConfig      `yaml:"player"`
	LifeSupport LifeSupportConfig `yaml:"life_support"`
	Engine      EngineConfig      `yaml:"engine"`
}

// LibraryConfig represents track discovery configuration.
type LibraryConfig struct {
	// Extensions restricts the directory scan to the listed audio
	// extensions. Empty means the built-in default set.
	Extensions []string `yaml:"extensions"`
}

// PlayerConfig represents player actor configuration.
type PlayerConfig struct {
	VolumeStep   float64 `yaml:"volume_step" default:"0.1" validate:"gt=0,lte=1"`
	CommandDepth int     `yaml:"command_depth" default:"16" validate:"gte=1"`
}

// LifeSupportConfig represents queue keep-alive configuration.
type LifeSupportConfig struct {
	IntervalSec     int `yaml:"interval_sec" default:"30" validate:"gte=1"`
	LowWater        int `yaml:"low_water" default:"1" validate:"gte=0"`
	ReplyTimeoutSec int `yaml:"reply_timeout_sec" default:"5" validate:"gte=1"`
}

// EngineConfig represents the playback engine configuration. Settings is a
// free-form map interpreted by the selected engine.
type EngineConfig struct {
	Type     string         `yaml:"type" default:"beep" validate:"oneof=beep"`
	Settings map[string]any `yaml:"settings"`
}

// Default returns the configuration used when no config file is supplied.
func Default() (*Config, error) {
	var cfg Config
	cfg.overrideFromEnv()
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SHUFFLEBOX_VOLUME_STEP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Player.VolumeStep = f
		}
	}
	if v := os.Getenv("SHUFFLEBOX_KEEPALIVE_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LifeSupport.IntervalSec = n
		}
	}
	if v := os.Getenv("SHUFFLEBOX_LOW_WATER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LifeSupport.LowWater = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// KeepAliveInterval returns the life-support polling interval.
func (c *Config) KeepAliveInterval() time.Duration {
	return time.Duration(c.LifeSupport.IntervalSec) * time.Second
}

// ReplyTimeout returns how long life-support waits for a length reply.
func (c *Config) ReplyTimeout() time.Duration {
	return time.Duration(c.LifeSupport.ReplyTimeoutSec) * time.Second
}
