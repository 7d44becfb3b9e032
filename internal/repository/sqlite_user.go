package repository

import (
	"context"
	"fmt"

	"github.com/avowell/daybreak/internal/db"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, id, displayName, timezone string) error {
	query := `INSERT INTO users (id, display_name, timezone, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, id, displayName, timezone, nowUTC())
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	return r.listIDs(ctx, `SELECT id FROM users ORDER BY id`)
}

// ListIDsWithOpenTasks returns users that have at least one incomplete task.
// The batch planner uses this to skip users with nothing to schedule.
func (r *SQLiteUserRepo) ListIDsWithOpenTasks(ctx context.Context) ([]string, error) {
	return r.listIDs(ctx, `SELECT DISTINCT u.id FROM users u
		JOIN tasks t ON t.user_id = u.id AND t.completed = 0
		ORDER BY u.id`)
}

func (r *SQLiteUserRepo) listIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
