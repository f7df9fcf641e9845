package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	APIPort string `env:"API_PORT" envDefault:"8080"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"devsecret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"friendbook_session"`

	// HashPasswords switches the credential store from plain equality to
	// bcrypt comparison. Off by default.
	HashPasswords bool `env:"AUTH_HASH_PASSWORDS" envDefault:"false"`

	// RedisAddr selects the Redis session backend when non-empty;
	// otherwise sessions live in process memory.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LogLevel int `env:"LOG_LEVEL" envDefault:"0"`
}

// Load reads .env if present, then parses configuration from the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
