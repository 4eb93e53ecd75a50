package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "familycart-test")
	t.Setenv("FIREBASE_API_KEY", "key")
	t.Setenv("STORE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("CATALOG_TIMEOUT", "")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "")
	t.Setenv("RESOLVE_CONCURRENCY", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("DATABASE_MAX_CONNS", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreFirestore, cfg.Store)
	assert.Equal(t, DefaultCatalogBaseURL, cfg.CatalogBaseURL)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 6*time.Hour, cfg.CatalogRefreshInterval)
	assert.Equal(t, 8, cfg.ResolveConcurrency)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE", StorePostgres)

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/familycart")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown store", "STORE", "mongo"},
		{"bad timeout", "CATALOG_TIMEOUT", "soon"},
		{"zero timeout", "CATALOG_TIMEOUT", "0s"},
		{"zero refresh interval", "CATALOG_REFRESH_INTERVAL", "0s"},
		{"negative refresh interval", "CATALOG_REFRESH_INTERVAL", "-1m"},
		{"bad concurrency", "RESOLVE_CONCURRENCY", "0"},
		{"bad pool size", "DATABASE_MAX_CONNS", "0"},
		{"telegram without chat", "TELEGRAM_TOKEN", "token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
