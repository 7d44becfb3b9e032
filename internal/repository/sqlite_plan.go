package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database. The schedule
// is stored as a JSON array; the (user_id, plan_date) primary key makes the
// upsert an overwrite of the day's live plan.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Upsert(ctx context.Context, p *domain.AIPlan) error {
	schedule, err := json.Marshal(p.Schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	query := `INSERT OR REPLACE INTO ai_plans
		(id, user_id, plan_date, schedule, explanation, reasoning, model_version, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.PlanDate,
		string(schedule),
		p.Explanation,
		p.Reasoning,
		p.ModelVersion,
		p.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByDate(ctx context.Context, userID, planDate string) (*domain.AIPlan, error) {
	query := `SELECT id, user_id, plan_date, schedule, explanation, reasoning, model_version, generated_at
		FROM ai_plans WHERE user_id = ? AND plan_date = ?`
	row := r.db.QueryRowContext(ctx, query, userID, planDate)

	var p domain.AIPlan
	var schedule, generatedAt string
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.PlanDate,
		&schedule,
		&p.Explanation,
		&p.Reasoning,
		&p.ModelVersion,
		&generatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	if err := json.Unmarshal([]byte(schedule), &p.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	p.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	return &p, nil
}
