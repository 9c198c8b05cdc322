package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST"     env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT"     env-default:"5432"`
	User     string `env:"POSTGRES_USER"     env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB"       env-default:"poll"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  env-default:"disable"`
}

// DSN returns a lib/pq connection URL.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DB,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	URL             string        `env:"REDIS_URL"`
	ResultsCacheTTL time.Duration `env:"RESULTS_CACHE_TTL" env-default:"5s"`
}

// Enabled reports whether a results cache should be used.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"        env-default:"0.0.0.0:8080"`
	LogLevel        string        `env:"LOG_LEVEL"        env-default:"info"`
	JWTSecret       string        `env:"JWT_SECRET"       env-required:"true"`
	TokenTTL        time.Duration `env:"TOKEN_TTL"        env-default:"30m"`
	Storage         string        `env:"STORAGE"          env-default:"postgres"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"     env-default:"http://localhost:3000" env-separator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	Postgres        PostgresConfig
	Redis           RedisConfig
}

// New loads an optional .env file and then reads the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE %q, want %q or %q", c.Storage, StoragePostgres, StorageMemory)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.Redis.Enabled() && c.Redis.ResultsCacheTTL <= 0 {
		return fmt.Errorf("RESULTS_CACHE_TTL must be positive, got %s", c.Redis.ResultsCacheTTL)
	}
	return nil
}
