package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/database"
	"nodefit/internal/models"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "nodefit.db"))
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.SchemaVersion{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	v, err := database.CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, database.SchemaVersion(), v)

	for _, table := range []string{"users", "profiles", "reports", "streaks", "badges", "meals", "cycles", "tasks", "key_values"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Badge{}, "idx_badges_profile_type"))
}

func TestMigratePreservesExistingRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodefit.db")
	db, err := database.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Create(&models.User{Email: "keep@x.com", PasswordHash: "h"}).Error)
	require.NoError(t, database.Close(db))

	db, err = database.Open("sqlite", path)
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.Migrate(db))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "keep@x.com", users[0].Email)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "x")
	assert.Error(t, err)
}
