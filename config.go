package strata

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config carries a machine's runtime tuning. It never describes chart
// topology; states, parent links, and subscriptions are wired in code.
type Config struct {
	// Debug enables debug output on the primary logger.
	Debug bool `yaml:"debug" env:"STRATA_DEBUG"`
	// NoisyDebug enables debug output on the noisy logger.
	NoisyDebug bool `yaml:"noisy_debug" env:"STRATA_NOISY_DEBUG"`
	// NoisyMessages lists message type names classified as noisy.
	NoisyMessages []string `yaml:"noisy_messages" env:"STRATA_NOISY_MESSAGES"`
	// QueueCapacity presizes the message buffer.
	QueueCapacity int `yaml:"queue_capacity" env:"STRATA_QUEUE_CAPACITY"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads runtime tuning from a YAML file, starting from the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv overlays STRATA_* environment variables onto the config. Unset
// variables leave fields unchanged; list values are comma separated.
func (c *Config) LoadEnv(ctx context.Context) error {
	if err := envconfig.Process(ctx, c); err != nil {
		return fmt.Errorf("process env config: %w", err)
	}
	return nil
}
