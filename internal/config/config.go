// Package config holds the CLI settings read from the environment.
// Command-line flags override these values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment configuration of the fsmgraph CLI.
type Config struct {
	TickInterval  time.Duration `env:"FSMGRAPH_TICK_INTERVAL" envDefault:"100ms"`
	FixedStep     time.Duration `env:"FSMGRAPH_FIXED_STEP" envDefault:"20ms"`
	LogLevel      string        `env:"FSMGRAPH_LOG_LEVEL" envDefault:"info"`
	ListenAddr    string        `env:"FSMGRAPH_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	GateCarryOver bool          `env:"FSMGRAPH_GATE_CARRY_OVER" envDefault:"false"`
	RedisAddr     string        `env:"FSMGRAPH_REDIS_ADDR"`
	RedisPassword string        `env:"FSMGRAPH_REDIS_PASSWORD"`
	RedisDB       int           `env:"FSMGRAPH_REDIS_DB" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("FSMGRAPH_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	if cfg.FixedStep < 0 {
		return Config{}, fmt.Errorf("FSMGRAPH_FIXED_STEP must not be negative, got %s", cfg.FixedStep)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
