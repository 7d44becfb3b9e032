package testutil

import (
	"database/sql"
	"testing"

	"github.com/avowell/daybreak/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// SeedUser inserts a user row; most tables have a foreign key on users.
func SeedUser(t *testing.T, database *sql.DB, userID string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO users (id, display_name, timezone, created_at) VALUES (?, ?, 'UTC', datetime('now'))`,
		userID, userID)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", userID, err)
	}
}
