package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 480, cfg.Session.TTLMinutes)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Minute, cfg.Session.SweepInterval)
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("SESSION_SECRET", "s3cr3t")
	v.Set("HTTP_READ_TIMEOUT", "5")
	v.Set("SESSION_SWEEP_INTERVAL", "2m")
	v.Set("DB_PORT", "no-es-numero")

	cfg := config.FromViper(v)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido cae al default")
	require.NoError(t, cfg.Validate())
}

func TestValidate_SinSecret(t *testing.T) {
	cfg := config.FromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidate_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "x")
	v.Set("DB_DRIVER", "mongo")
	err := config.FromViper(v).Validate()
	require.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "dir", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/dir?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoadForTools_NoExigeSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.LoadForTools()
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)

	_, err = config.Load()
	assert.Error(t, err, "el servidor sí exige SESSION_SECRET")
}
