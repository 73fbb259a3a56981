package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DATASET_STORE", "")
	t.Setenv("DATASET_RETENTION", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, StoreSQLite, cfg.Dataset.Store)
	assert.Zero(t, cfg.Dataset.Retention)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATASET_STORE", "Postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DATASET_RETENTION", "720h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, StorePostgres, cfg.Dataset.Store)
	assert.Equal(t, 720*time.Hour, cfg.Dataset.Retention)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:pw@db:5432/hris_analytics?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	t.Setenv("APP_PORT", "eighty")
	_, err := Load()
	assert.ErrorContains(t, err, "APP_PORT")

	t.Setenv("APP_PORT", "8080")
	t.Setenv("DATASET_RETENTION", "30 days")
	_, err = Load()
	assert.ErrorContains(t, err, "DATASET_RETENTION")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWT:     JWTConfig{Secret: "secret"},
			Storage: StorageConfig{BasePath: "./uploads"},
			Dataset: DatasetConfig{Store: StoreSQLite, SQLitePath: "data.db"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"postgres without password", func(c *Config) { c.Dataset.Store = StorePostgres }, "DB_PASSWORD"},
		{"unknown store", func(c *Config) { c.Dataset.Store = "mongo" }, "DATASET_STORE"},
		{"negative retention", func(c *Config) { c.Dataset.Retention = -time.Hour }, "DATASET_RETENTION"},
		{"missing sqlite path", func(c *Config) { c.Dataset.SQLitePath = "" }, "SQLITE_PATH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	c := &Config{App: AppConfig{LogLevel: "debug"}}
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())

	c.App.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}
