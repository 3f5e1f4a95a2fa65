package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, sqlDB))
	require.NoError(t, db.Migrate(ctx, sqlDB))

	var applied int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	_, err = sqlDB.Exec(`INSERT INTO kv (key, value) VALUES ('k', '{}')`)
	assert.NoError(t, err)
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/eduplay.db"

	database, err := db.Open(path)
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, database.Ping(context.Background()))
}
