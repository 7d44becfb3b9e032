package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicate-column errors from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		timezone     TEXT NOT NULL DEFAULT 'UTC',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id               TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		display_name          TEXT NOT NULL DEFAULT '',
		timezone              TEXT NOT NULL DEFAULT 'UTC',
		focus_duration_min    INTEGER NOT NULL DEFAULT 50,
		break_duration_min    INTEGER NOT NULL DEFAULT 5,
		work_start_hour       INTEGER NOT NULL DEFAULT 9,
		work_end_hour         INTEGER NOT NULL DEFAULT 17,
		most_productive_hours TEXT NOT NULL DEFAULT '[]',
		distraction_hours     TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('high','medium','low')),
		estimate_min INTEGER NOT NULL DEFAULT 0,
		completed    INTEGER NOT NULL DEFAULT 0,
		due_date     TEXT,
		category     TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_open ON tasks(user_id, completed)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		progress_pct REAL NOT NULL DEFAULT 0,
		target_date  TEXT,
		active       INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS habits (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		preferred_time TEXT NOT NULL DEFAULT 'morning'
		               CHECK(preferred_time IN ('morning','afternoon','evening')),
		duration_min   INTEGER NOT NULL DEFAULT 15,
		frequency      TEXT NOT NULL DEFAULT 'daily'
		               CHECK(frequency IN ('daily','weekly')),
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_aggregates (
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day             TEXT NOT NULL,
		focus_min       INTEGER NOT NULL DEFAULT 0,
		completion_rate REAL NOT NULL DEFAULT 0,
		satisfaction    INTEGER,
		PRIMARY KEY (user_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS ai_plans (
		id            TEXT NOT NULL,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		plan_date     TEXT NOT NULL,
		schedule      TEXT NOT NULL,
		explanation   TEXT NOT NULL DEFAULT '',
		reasoning     TEXT NOT NULL DEFAULT '',
		model_version TEXT NOT NULL,
		generated_at  TEXT NOT NULL,
		PRIMARY KEY (user_id, plan_date)
	)`,

	`CREATE TABLE IF NOT EXISTS energy_samples (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		recorded_at TEXT NOT NULL,
		level       INTEGER NOT NULL CHECK(level BETWEEN 1 AND 5)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_energy_user ON energy_samples(user_id, recorded_at)`,
}
