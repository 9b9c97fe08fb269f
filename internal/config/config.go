package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"8085"`
	RedisURL     string        `envconfig:"REDIS_URL"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`

	// inbound per-IP rate limiting
	RatePerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
	RateBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

// Load reads configuration from the environment, with an optional .env
// file merged in first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	return &cfg, nil
}
