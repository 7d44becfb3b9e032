package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLiteHabitRepo implements HabitRepo using a SQLite database.
type SQLiteHabitRepo struct {
	db db.DBTX
}

// NewSQLiteHabitRepo creates a new SQLiteHabitRepo.
func NewSQLiteHabitRepo(conn db.DBTX) *SQLiteHabitRepo {
	return &SQLiteHabitRepo{db: conn}
}

func (r *SQLiteHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	query := `INSERT INTO habits (id, user_id, title, preferred_time, duration_min, frequency, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.Title,
		string(h.PreferredTime),
		h.DurationMin,
		string(h.Frequency),
		boolToInt(h.Active),
		h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	return nil
}

func (r *SQLiteHabitRepo) ListActive(ctx context.Context, userID string) ([]domain.Habit, error) {
	query := `SELECT id, user_id, title, preferred_time, duration_min, frequency, active, created_at
		FROM habits WHERE user_id = ? AND active = 1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		var h domain.Habit
		var preferredTime, frequency, createdAt string
		var active int
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &preferredTime, &h.DurationMin, &frequency, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning habit: %w", err)
		}
		h.PreferredTime = domain.TimeOfDay(preferredTime)
		h.Frequency = domain.HabitFrequency(frequency)
		h.Active = intToBool(active)
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *SQLiteHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	query := `UPDATE habits SET title = ?, preferred_time = ?, duration_min = ?, frequency = ?, active = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		h.Title,
		string(h.PreferredTime),
		h.DurationMin,
		string(h.Frequency),
		boolToInt(h.Active),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	return requireRowAffected(res, "habit")
}

func (r *SQLiteHabitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	return requireRowAffected(res, "habit")
}
