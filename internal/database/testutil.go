package database

import (
	"database/sql"
	"testing"

	"github.com/diegoclair/advice-rotation-bot/migrator"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open(DriverSQLite, ":memory:")
	require.NoError(t, err, "Failed to create test database")

	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)

	err = migrator.Migrate(sqlDB, DriverSQLite)
	require.NoError(t, err, "Failed to run migrations on test database")

	return &DB{conn: sqlDB, driver: DriverSQLite}
}

// CleanupTestDB closes the test database
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	err := db.Close()
	require.NoError(t, err, "Failed to close test database")
}
