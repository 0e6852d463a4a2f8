package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=720h"`

	Backend BackendConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required")
	}
	return &cfg, nil
}
