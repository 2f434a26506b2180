package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/nag/internal/data/db"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(fmt.Errorf("get task: %w", sql.ErrNoRows)))
	assert.False(t, IsNotFoundError(errors.New("boom")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsCorruptionError(t *testing.T) {
	assert.True(t, IsCorruptionError(errors.New("database disk image is malformed")))
	assert.True(t, IsCorruptionError(errors.New("file is not a database")))
	assert.False(t, IsCorruptionError(errors.New("no such table: tasks")))
}

func TestRecoverFromCorruption(t *testing.T) {
	t.Run("moves database and sidecar files aside", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, db.FileName)

		require.NoError(t, os.WriteFile(dbPath, []byte("garbage"), 0o644))
		require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))
		require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm"), 0o644))

		require.NoError(t, RecoverFromCorruption(dir))

		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "corrupted db should be moved away")
		_, err = os.Stat(dbPath + "-wal")
		assert.True(t, os.IsNotExist(err), "wal sidecar should be moved away")

		backups, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
		require.NoError(t, err)
		assert.Len(t, backups, 3, "db, wal, and shm backups should remain")
	})

	t.Run("missing database is not an error", func(t *testing.T) {
		assert.NoError(t, RecoverFromCorruption(t.TempDir()))
	})

	t.Run("fresh open works after recovery", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte("garbage"), 0o644))
		require.NoError(t, RecoverFromCorruption(dir))

		database, err := db.Open(dir, db.DefaultOpenOptions())
		require.NoError(t, err)
		require.NoError(t, database.Close())
	})
}
