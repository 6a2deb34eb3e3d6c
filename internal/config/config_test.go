package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `{"GROQ_API_KEY":"gsk_test"}`))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gsk_test", cfg.APIKey)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "chat_history.db", cfg.DBPath)
	require.Equal(t, "uploads", cfg.UploadsDir)
	require.Equal(t, 300*time.Second, cfg.CatalogTTL)
	require.Equal(t, 3, cfg.RetryMaxAttempts)

	// the credential is injected into the environment
	require.Equal(t, "gsk_test", os.Getenv(APIKeyName))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `{"GROQ_API_KEY":"gsk_test"}`))
	t.Setenv("ADDR", ":9999")
	t.Setenv("MODEL_CACHE_TTL_SECONDS", "60")
	t.Setenv("PROVIDER_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, 60*time.Second, cfg.CatalogTTL)
	require.Equal(t, 5, cfg.RetryMaxAttempts)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.json"))
	_, err := Load()
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `{"GROQ_API_KEY":`))
	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `{}`))
	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), APIKeyName)
}
