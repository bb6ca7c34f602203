// Package config loads todo-store settings from TODO_* environment variables, reading an
// optional .env file first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendGorm   = "gorm"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

type Config struct {
	Backend            string        `env:"TODO_BACKEND" envDefault:"gorm"`
	DSN                string        `env:"TODO_DSN" envDefault:"todo.db"`
	LogLevel           string        `env:"TODO_LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"TODO_LOG_FORMAT" envDefault:"text"`
	SlowQueryThreshold time.Duration `env:"TODO_SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
}

// Load reads envFiles (missing files are skipped) without overriding variables that are
// already set, then parses the environment.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendGorm, BackendSQL:
		if c.DSN == "" {
			return fmt.Errorf("TODO_DSN is required for backend %q", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
