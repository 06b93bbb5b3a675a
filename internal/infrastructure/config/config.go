package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	API       APIConfig
	Session   SessionConfig
	Redis     RedisConfig
	DevServer DevServerConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// SessionConfig selects where the credential cache lives. The file backend is
// the default; redis suits shared test environments, memory is for tests.
type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE,    default=.booking-session.json"`
	Key     string `env:"SESSION_KEY,     default=booking:session"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type DevServerConfig struct {
	Port      string        `env:"DEVSERVER_PORT,       default=8080"`
	JWTSecret string        `env:"DEVSERVER_JWT_SECRET, default=devserver-secret"`
	TokenTTL  time.Duration `env:"DEVSERVER_TOKEN_TTL,  default=12h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
