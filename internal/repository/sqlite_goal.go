package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, progress_pct, target_date, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Title,
		g.ProgressPct,
		nullableTimeToString(g.TargetDate, dateLayout),
		boolToInt(g.Active),
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) ListActive(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT id, user_id, title, progress_pct, target_date, active, created_at
		FROM goals WHERE user_id = ? AND active = 1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var targetDate sql.NullString
		var active int
		var createdAt string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.ProgressPct, &targetDate, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		g.TargetDate = parseNullableTime(targetDate, dateLayout)
		g.Active = intToBool(active)
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET title = ?, progress_pct = ?, target_date = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Title,
		g.ProgressPct,
		nullableTimeToString(g.TargetDate, dateLayout),
		boolToInt(g.Active),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return requireRowAffected(res, "goal")
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return requireRowAffected(res, "goal")
}
