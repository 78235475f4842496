package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "carsharing", cfg.App.Name)
	assert.Equal(t, "production", cfg.HTTP.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "./data/cars.json", cfg.Store.DataFile)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "carsharing", cfg.Redis.Prefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_NAME", "fleet")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/cars.db")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example,")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "fleet", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/cars.db", cfg.SQLite.Path)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.HTTP.Origins())
}

func TestNewCollectsErrors(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "first")
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_READ_TIMEOUT")
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), `unknown STORE_BACKEND "mongo"`)
}

func TestNewWithoutDotEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Chdir(t.TempDir())

	_, err := New()
	assert.NoError(t, err)
}

func TestDSN(t *testing.T) {
	db := &DB{Host: "localhost", Port: "5432", User: "cars", Password: "secret", Name: "carsharing", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=cars password=secret dbname=carsharing sslmode=disable", db.DSN())
}
