package database

import (
	"context"
	"path/filepath"
	"testing"

	"depositdefender/config"
	"depositdefender/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, EVENTS_CACHE_INDEX)
}

func TestCache_Enabled(t *testing.T) {
	assert.False(t, Cache{}.Enabled())
}

func TestNew_OpensSqliteAndMigrates(t *testing.T) {
	cfg := config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "inspections.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// No cache configured: the database runs standalone.
	assert.False(t, db.Cache.Enabled())

	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())

	property := &models.Property{
		Address:     "1 Database Drive",
		TenantName:  "DB Tenant",
		MoveOutDate: "2026-09-01",
	}
	require.NoError(t, db.SQLWithContext(context.Background()).Create(property).Error)

	var count int64
	require.NoError(t, db.SQL.Model(&models.Property{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNew_RejectsEmptyDatabasePath(t *testing.T) {
	_, err := New(config.Config{})
	assert.Error(t, err)
}
