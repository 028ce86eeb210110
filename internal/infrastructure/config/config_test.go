package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"SERVER_PORT", "API_BASE_PATH", "DATA_DIR", "SYNC_ENABLED",
			"SYNC_PUSH_TIMEOUT_SECONDS", "PROMETHEUS_ENABLED", "CORS_ALLOWED_ORIGINS"} {
			t.Setenv(key, "")
		}

		c := NewConfigFromEnv()
		assert.Equal(t, "8080", c.ServerPort)
		assert.Equal(t, "/api/v1", c.BasePath)
		assert.Equal(t, "./data", c.DataDir)
		assert.False(t, c.SyncEnabled)
		assert.Equal(t, 15*time.Second, c.PushTimeout)
		assert.True(t, c.AllowAllOrigins())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("SYNC_ENABLED", "true")
		t.Setenv("SYNC_PUSH_TIMEOUT_SECONDS", "3")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://tostadora.app")

		c := NewConfigFromEnv()
		assert.True(t, c.SyncEnabled)
		assert.Equal(t, 3*time.Second, c.PushTimeout)
		assert.Equal(t, []string{"http://localhost:5173", "https://tostadora.app"}, c.CORSAllowedOrigins)
		assert.False(t, c.AllowAllOrigins())
	})

	t.Run("InvalidValuesFallBack", func(t *testing.T) {
		t.Setenv("SYNC_ENABLED", "talvez")
		t.Setenv("SYNC_PUSH_TIMEOUT_SECONDS", "-1")

		c := NewConfigFromEnv()
		assert.False(t, c.SyncEnabled)
		assert.Equal(t, 15*time.Second, c.PushTimeout)
	})
}
