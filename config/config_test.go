package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FromEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")
	t.Setenv("SERVER_PORT", "8288")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("ENVIRONMENT", "test")

	config, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8288, config.ServerPort)
	assert.Equal(t, dbPath, config.DatabasePath)
	assert.Equal(t, "test", config.Environment)

	t.Run("defaults fill unset share settings", func(t *testing.T) {
		assert.Equal(t, 7, config.ShareExpiryDays)
		assert.Equal(t, "http://localhost:8288", config.ShareBaseURL)
	})

	t.Run("GetConfig returns the validated instance", func(t *testing.T) {
		assert.Equal(t, config, GetConfig())
	})
}

func TestNew_ExplicitShareSettings(t *testing.T) {
	t.Setenv("SERVER_PORT", "8288")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("SHARE_BASE_URL", "https://inspections.example.com")
	t.Setenv("SHARE_EXPIRY_DAYS", "14")

	config, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://inspections.example.com", config.ShareBaseURL)
	assert.Equal(t, 14, config.ShareExpiryDays)
}

func TestNew_RejectsInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "0")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))

	_, err := New()
	assert.Error(t, err)
}
