package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, user_id, title, description, priority, estimate_min,
		completed, due_date, category, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		string(t.Priority),
		t.EstimateMin,
		boolToInt(t.Completed),
		nullableTimeToString(t.DueDate, dateLayout),
		t.Category,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListOpen(ctx context.Context, userID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND completed = 0
		ORDER BY created_at, id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteTaskRepo) List(ctx context.Context, userID string, includeCompleted bool) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	if !includeCompleted {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY created_at, id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteTaskRepo) list(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, priority = ?,
		estimate_min = ?, completed = ?, due_date = ?, category = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Priority),
		t.EstimateMin,
		boolToInt(t.Completed),
		nullableTimeToString(t.DueDate, dateLayout),
		t.Category,
		nowUTC(),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRowAffected(res, "task")
}

func (r *SQLiteTaskRepo) MarkCompleted(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	return requireRowAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRowAffected(res, "task")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var priority string
	var completed int
	var dueDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&priority,
		&t.EstimateMin,
		&completed,
		&dueDate,
		&t.Category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Priority = domain.CoercePriority(priority)
	t.Completed = intToBool(completed)
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}

func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
