package config

import (
	"errors"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("REDIS_DB", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("HTTP_ADDR", "")
}

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(func() { loadDotEnv = func() error { return godotenv.Load() } })
	loadDotEnv = func() error { return nil }
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "development", cfg.LogMode)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 60*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 14*24*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Cleanup(func() { loadDotEnv = func() error { return godotenv.Load() } })
	loadDotEnv = func() error { return nil }
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "1")
	t.Setenv("HTTP_ADDR", ":9000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.LogMode)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, ":9000", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	t.Cleanup(func() { loadDotEnv = func() error { return godotenv.Load() } })
	loadDotEnv = func() error { return nil }

	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)

	setRequired(t)
	t.Setenv("REDIS_ADDR", "")
	_, err = Load()
	require.Error(t, err)

	setRequired(t)
	t.Setenv("SECRET_KEY", "")
	_, err = Load()
	require.Error(t, err)

	for _, kv := range [][2]string{
		{"REDIS_DB", "x"},
		{"ACCESS_TOKEN_EXPIRE_MINUTES", "0"},
		{"REFRESH_TOKEN_EXPIRE_DAYS", "-1"},
	} {
		setRequired(t)
		t.Setenv(kv[0], kv[1])
		_, err = Load()
		require.Error(t, err, kv[0])
	}

	setRequired(t)
	loadDotEnv = func() error { return errors.New("bad .env") }
	_, err = Load()
	require.Error(t, err)
}
