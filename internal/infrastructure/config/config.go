package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs every issued token; rotating it logs everyone out.
	JWTSecret string `env:"JWT_SECRET, required"`
	// JWTTTLMillis is the token lifetime in milliseconds.
	JWTTTLMillis int64 `env:"JWT_TTL_MS, default=3600000"`

	BcryptCost int  `env:"BCRYPT_COST, default=10"`
	Seed       bool `env:"SEED,        default=true"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=user_directory"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig configures the optional login throttle backend. An empty Addr
// disables Redis entirely: no connection, no throttle.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

type ThrottleConfig struct {
	MaxFailures int64         `env:"LOGIN_MAX_FAILURES,    default=10"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW,  default=15m"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMillis) * time.Millisecond
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
