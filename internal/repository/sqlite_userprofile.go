package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
// Hour lists are stored as JSON arrays in TEXT columns.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT user_id, display_name, timezone, focus_duration_min, break_duration_min,
		work_start_hour, work_end_hour, most_productive_hours, distraction_hours
		FROM user_profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.UserProfile
	var productive, distraction string
	err := row.Scan(
		&p.UserID,
		&p.DisplayName,
		&p.Timezone,
		&p.FocusDurationMin,
		&p.BreakDurationMin,
		&p.WorkStartHour,
		&p.WorkEndHour,
		&productive,
		&distraction,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.MostProductiveHours = decodeHourList(productive)
	p.DistractionHours = decodeHourList(distraction)
	p.Normalize()
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profiles (user_id, display_name, timezone,
		focus_duration_min, break_duration_min, work_start_hour, work_end_hour,
		most_productive_hours, distraction_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.DisplayName,
		p.Timezone,
		p.FocusDurationMin,
		p.BreakDurationMin,
		p.WorkStartHour,
		p.WorkEndHour,
		encodeHourList(p.MostProductiveHours),
		encodeHourList(p.DistractionHours),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

func encodeHourList(hours []int) string {
	if hours == nil {
		hours = []int{}
	}
	b, err := json.Marshal(hours)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeHourList(s string) []int {
	if s == "" {
		return nil
	}
	var hours []int
	if err := json.Unmarshal([]byte(s), &hours); err != nil {
		return nil
	}
	if len(hours) == 0 {
		return nil
	}
	return hours
}
