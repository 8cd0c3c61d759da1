package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 4*time.Hour, cfg.Drafts.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "0 3 * * *", cfg.Scheduler.ReconcileCron)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromViper_LeeValores(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("DRAFT_TTL_MINUTES", 30)
	v.Set("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.Drafts.TTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "taller", Password: "p@ss:word", DBName: "taller", SSLMode: "disable"}
	assert.Equal(t, "postgres://taller:p%40ss%3Aword@db:5432/taller?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
