package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "stock-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Redis.StockTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STOCK_CACHE_TTL_SECONDS", "5")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("DB_MAX_CONNS", "abc")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.StockTTL)
	assert.True(t, cfg.Migrate.OnStart)
	assert.Equal(t, int32(25), cfg.DB.MaxConns, "un valor no numérico usa el defecto")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/stock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
