package storefront

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"STOREFRONT_API_BASE", "STOREFRONT_API_PREFIX", "STOREFRONT_HTTP_TIMEOUT", "STOREFRONT_DEMO",
		"STOREFRONT_STORE", "STOREFRONT_STORE_PATH", "SESSION_TTL_HOURS", "TEMPORAL_ADDRESS", "TEMPORAL_DISABLED",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIBase)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "session.json", filepath.Base(cfg.StorePath))
	assert.Nil(t, cfg.Demo)
	assert.False(t, cfg.TemporalEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_DEMO", "yes")
	t.Setenv("STOREFRONT_STORE", "memory")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_USER_AGENT", " storefront-kiosk/3 ")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("TEMPORAL_ADDRESS", "temporal:7233")
	t.Setenv("TEMPORAL_DISABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Demo)
	assert.True(t, *cfg.Demo)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "storefront-kiosk/3", cfg.UserAgent)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.TemporalEnabled())

	t.Setenv("TEMPORAL_DISABLED", "true")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.TemporalEnabled())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("STOREFRONT_STORE", "memory")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "soon")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "")
	t.Setenv("STOREFRONT_STORE", "floppy")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("STOREFRONT_STORE", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadEnvFileIgnoresMissingFile(t *testing.T) {
	t.Setenv("STOREFRONT_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, LoadEnvFile())
}
