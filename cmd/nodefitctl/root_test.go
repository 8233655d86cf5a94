package main

import (
	"bytes"
	"fmt"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodefit/internal/database"
	"nodefit/internal/models"
	"nodefit/internal/repositories"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func seedProfile(t *testing.T, path string) uint {
	t.Helper()
	db, err := database.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = database.Close(db) }()
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	user := &models.User{Email: "cli@example.com", PasswordHash: "x"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(ctx, user))
	profile := &models.Profile{UserID: user.ID, Name: "Ada", Goal: "Stay active"}
	require.NoError(t, repositories.NewGORMProfileRepository(db).Create(ctx, profile))
	_, _, err = repositories.NewGORMBadgeRepository(db).Award(ctx, profile.ID, models.BadgeFirstScan)
	require.NoError(t, err)
	return profile.ID
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "nodefitctl")
	assert.Contains(t, out, "migrate")
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodefit.db")
	for i := 0; i < 2; i++ {
		out, err := run(t, "--db-driver", "sqlite", "--db-dsn", path, "migrate")
		require.NoError(t, err, "run %d", i+1)
		assert.Contains(t, out, "Schema version 3 of 3")
	}
}

func TestProfileCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodefit.db")
	id := fmt.Sprint(seedProfile(t, path))

	out, err := run(t, "--db-dsn", path, "profile", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME\tAda")
	assert.Contains(t, out, "GOAL\tStay active")

	out, err = run(t, "--db-dsn", path, "badges", id)
	require.NoError(t, err)
	assert.Contains(t, out, "first_scan\tFirst Flame\t")
	assert.NotContains(t, out, "first_scan\tFirst Flame\t-")

	out, err = run(t, "--db-dsn", path, "streak", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Current 0")

	_, err = run(t, "--db-dsn", path, "profile", "show", "zero")
	assert.EqualError(t, err, `invalid profile id "zero"`)

	_, err = run(t, "--db-dsn", path, "profile", "delete", id)
	assert.EqualError(t, err, "refusing to delete profile "+id+" without --yes")

	out, err = run(t, "--db-dsn", path, "profile", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted profile")

	_, err = run(t, "--db-dsn", path, "profile", "show", id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
