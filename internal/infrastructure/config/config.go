package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the base URL of the STWMS backend the portal fronts.
	BackendURL string `env:"BACKEND_URL, default=http://localhost:9090"`

	// SessionSecret signs the session cookie. Mandatory outside development.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=24h"`

	Redis RedisConfig
	Cache CacheConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CacheConfig struct {
	Size int           `env:"CACHE_SIZE, default=512"`
	TTL  time.Duration `env:"CACHE_TTL,  default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
