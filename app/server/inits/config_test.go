package inits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("DB_CONN", "postgres://localhost/crowdfunding")
	t.Setenv("SIGNATURE_SECRET_KEY", "secret")

	cfg, err := Config()
	require.NoError(t, err)
	assert.Equal(t, ":1323", cfg.System.Listen)
	assert.Equal(t, 5.0, cfg.Security.AuthRateLimit)
	assert.Empty(t, cfg.System.RedisConnectionString)
	assert.False(t, cfg.IsProd())
}

func TestConfigProduction(t *testing.T) {
	t.Setenv("DB_CONN", "postgres://localhost/crowdfunding")
	t.Setenv("SIGNATURE_SECRET_KEY", "secret")
	t.Setenv("MODE", "Production")

	cfg, err := Config()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
}

func TestConfigRejects(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("DB_CONN", "postgres://localhost/crowdfunding")
		t.Setenv("SIGNATURE_SECRET_KEY", "")
		_ = os.Unsetenv("SIGNATURE_SECRET_KEY")

		_, err := Config()
		assert.Error(t, err)
	})

	t.Run("non positive rate limit", func(t *testing.T) {
		t.Setenv("DB_CONN", "postgres://localhost/crowdfunding")
		t.Setenv("SIGNATURE_SECRET_KEY", "secret")
		t.Setenv("AUTH_RATE_LIMIT", "0")

		_, err := Config()
		assert.Error(t, err)
	})
}

func TestLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "server.log")

	l, err := Logger(false, logFile)
	require.NoError(t, err)

	l.Info("hello from test")
	_ = l.Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello from test"`)
}

func TestRedisDisabled(t *testing.T) {
	rdb, err := Redis("")
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
