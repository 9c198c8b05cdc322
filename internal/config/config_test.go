package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.ResultsCacheTTL)
}

func TestNew_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE", "memory")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "unknown storage", env: map[string]string{"JWT_SECRET": "s", "STORAGE": "sqlite"}},
		{name: "zero token ttl", env: map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "poll", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/poll?sslmode=disable", c.DSN())
}

func TestPostgresConfig_DSN_EscapesCredentials(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5432", User: "poll:admin", Password: "p@ss/w:rd?", DB: "poll", SSLMode: "require"}

	u, err := url.Parse(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "poll:admin", u.User.Username())
	password, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/w:rd?", password)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/poll", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}
